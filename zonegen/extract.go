// Package zonegen turns a merged record tree into zones: it detects zone
// boundaries by SOA records, attributes every record and include to its
// owning zone, and renders each zone as zone-file text.
package zonegen

import (
	"sort"

	"github.com/skrail/dnstree"
)

// ZoneRecord is one resource record attributed to a zone.
type ZoneRecord struct {
	Domain dnstree.Domain
	Class  string
	Type   string
	TTL    uint32
	Data   []string
}

// ZoneInclude is one $INCLUDE directive attributed to a zone.
type ZoneInclude struct {
	Domain dnstree.Domain
	File   string
}

// Zone is the compiled content of one zone apex. Records and includes are
// ordered as the tree walk discovered them.
type Zone struct {
	Name     dnstree.Domain
	Records  []ZoneRecord
	Includes []ZoneInclude
}

// Extract walks a merged tree rooted at origin and groups records and
// includes by the zone that owns them. A node with an SOA record starts a
// new zone at its domain; its own records belong to that zone, its Parent
// records to the zone enclosing it. Zones are returned in the order their
// first entry was found.
func Extract(root *dnstree.Node, origin dnstree.Domain) ([]Zone, error) {
	c := &collector{index: make(map[string]int)}
	if err := walk(root, origin, nil, c); err != nil {
		return nil, err
	}
	return c.zones, nil
}

type collector struct {
	zones []Zone
	index map[string]int
}

func (c *collector) zone(apex dnstree.Domain) *Zone {
	key := apex.String()
	i, ok := c.index[key]
	if !ok {
		i = len(c.zones)
		c.zones = append(c.zones, Zone{Name: apex})
		c.index[key] = i
	}
	return &c.zones[i]
}

// walk threads the current domain and the stack of zone apexes (outermost
// first) through a pre-order traversal.
func walk(node *dnstree.Node, domain dnstree.Domain, stack []dnstree.Domain, c *collector) error {
	if node == nil {
		return nil
	}

	// The enclosing zone excludes any zone this node itself starts; Parent
	// records attach there.
	enclosing := stack
	if _, ok := node.Records[dnstree.TypeSOA]; ok {
		stack = append(stack[:len(stack):len(stack)], domain)
	}

	if len(node.Records) > 0 {
		if len(stack) == 0 {
			return &dnstree.NoEnclosingZoneError{Domain: domain.String(), Type: firstType(node.Records)}
		}
		appendRecords(c.zone(stack[len(stack)-1]), domain, node.Records)
	}

	if len(node.Parent) > 0 {
		if len(enclosing) == 0 {
			return &dnstree.NoEnclosingZoneError{Domain: domain.String(), Type: firstType(node.Parent)}
		}
		appendRecords(c.zone(enclosing[len(enclosing)-1]), domain, node.Parent)
	}

	for _, include := range node.Includes {
		if len(stack) == 0 {
			return &dnstree.NoEnclosingZoneError{Domain: domain.String(), File: include.File}
		}
		zone := c.zone(stack[len(stack)-1])
		zone.Includes = append(zone.Includes, ZoneInclude{Domain: domain, File: include.File})
	}

	for _, name := range childNames(node) {
		child, err := domain.Child(name)
		if err != nil {
			return err
		}
		if err := walk(node.Children[name], child, stack, c); err != nil {
			return err
		}
	}
	return nil
}

func appendRecords(zone *Zone, domain dnstree.Domain, rs dnstree.RecordSet) {
	for _, typeName := range typeNames(rs) {
		for _, record := range rs[typeName] {
			var ttl uint32
			if record.TTL != nil {
				ttl = *record.TTL
			}
			zone.Records = append(zone.Records, ZoneRecord{
				Domain: domain,
				Class:  record.Class,
				Type:   typeName,
				TTL:    ttl,
				Data:   append([]string(nil), record.Data...),
			})
		}
	}
}

// typeNames orders a record set's types deterministically: SOA first, the
// rest sorted.
func typeNames(rs dnstree.RecordSet) []string {
	names := make([]string, 0, len(rs))
	for typeName := range rs {
		if typeName != dnstree.TypeSOA {
			names = append(names, typeName)
		}
	}
	sort.Strings(names)
	if _, ok := rs[dnstree.TypeSOA]; ok {
		names = append([]string{dnstree.TypeSOA}, names...)
	}
	return names
}

func firstType(rs dnstree.RecordSet) string {
	names := typeNames(rs)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

func childNames(node *dnstree.Node) []string {
	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
