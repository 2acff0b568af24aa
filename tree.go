package dnstree

import (
	"slices"
	"strconv"
	"strings"
)

// TypeSOA marks the start of a zone of authority.
const TypeSOA = "SOA"

// Record is one resource record instance. Data is opaque to the compile
// core; its fields are space-joined on serialization. TTL is nil until
// normalization assigns the effective value.
type Record struct {
	Type  string
	Class string
	TTL   *uint32
	Data  []string
}

// Equal compares records structurally, TTL included.
func (r Record) Equal(other Record) bool {
	if r.Type != other.Type || r.Class != other.Class {
		return false
	}
	if (r.TTL == nil) != (other.TTL == nil) {
		return false
	}
	if r.TTL != nil && *r.TTL != *other.TTL {
		return false
	}
	return slices.Equal(r.Data, other.Data)
}

func (r Record) String() string {
	ttl := "-"
	if r.TTL != nil {
		ttl = strconv.FormatUint(uint64(*r.TTL), 10)
	}
	parts := append([]string{r.Class, r.Type, ttl}, r.Data...)
	return strings.Join(parts, " ")
}

// RecordSet maps a record type name to the records of that type, in
// declaration order. Single-valued types hold one element.
type RecordSet map[string][]Record

// Include is an $INCLUDE directive, paired with its domain at extraction.
type Include struct {
	File string
}

// Node is one vertex of a record tree. Records are owned at this node,
// Parent records are attributed to the enclosing zone instead. TTL is the
// node-level default consumed by normalization.
type Node struct {
	TTL      *uint32
	Records  RecordSet
	Parent   RecordSet
	Includes []Include
	Children map[string]*Node
}

// Schema reports, per record type name, whether the type permits multiple
// values. The merger consults it to choose between concatenation and
// equality checking.
type Schema interface {
	MultiValued(recordType string) bool
}

// TTL returns a pointer to v, for building records and nodes literally.
func TTL(v uint32) *uint32 {
	return &v
}
