package config

// Catalog is the record type catalog: per type name, whether records of
// that type permit multiple values. It implements dnstree.Schema.
type Catalog map[string]bool

// Default returns the catalog of common record types. SOA, CNAME and DNAME
// are single-valued; the rest are list-capable.
func Default() Catalog {
	return Catalog{
		"A": true, "AAAA": true, "NS": true, "MX": true, "TXT": true,
		"SRV": true, "PTR": true, "CAA": true, "SSHFP": true, "TLSA": true,
		"NAPTR": true,
		"SOA": false, "CNAME": false, "DNAME": false,
	}
}

// MultiValued reports whether the given type may hold multiple values.
// Unknown types are treated as list-capable.
func (c Catalog) MultiValued(recordType string) bool {
	multi, ok := c[recordType]
	if !ok {
		return true
	}
	return multi
}
