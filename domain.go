package dnstree

import (
	"slices"
	"strings"
)

// Separator splits a domain name into labels.
const Separator = "."

const maxLabelLen = 63

// Domain is a DNS name: an ordered label sequence plus an absolute flag.
// Labels are held root-first, so resolving a relative name appends its
// labels and Parent drops the last one. The zero value is the empty
// relative name.
type Domain struct {
	labels   []string
	absolute bool
}

// Root returns the absolute root domain (".").
func Root() Domain {
	return Domain{absolute: true}
}

// NewDomain builds a domain from labels ordered root-first.
func NewDomain(labels []string, absolute bool) (Domain, error) {
	for _, label := range labels {
		if err := checkLabel(label); err != nil {
			return Domain{}, err
		}
	}
	return Domain{labels: slices.Clone(labels), absolute: absolute}, nil
}

// ParseDomain parses a dotted name. A trailing separator marks the name
// absolute; "." is the root and "" the empty relative name.
func ParseDomain(s string) (Domain, error) {
	if s == "" {
		return Domain{}, nil
	}
	absolute := strings.HasSuffix(s, Separator)
	s = strings.TrimSuffix(s, Separator)
	if s == "" {
		return Domain{absolute: absolute}, nil
	}
	labels := strings.Split(s, Separator)
	slices.Reverse(labels)
	return NewDomain(labels, absolute)
}

func checkLabel(label string) error {
	switch {
	case label == "":
		return &InvalidDomainError{Label: label, Reason: "empty label"}
	case len(label) > maxLabelLen:
		return &InvalidDomainError{Label: label, Reason: "label exceeds 63 characters"}
	case strings.Contains(label, Separator):
		return &InvalidDomainError{Label: label, Reason: "label contains separator"}
	case strings.ContainsAny(label, `/\`):
		// Apex names become output file names; path characters must never
		// reach the filesystem.
		return &InvalidDomainError{Label: label, Reason: "label contains path separator"}
	}
	return nil
}

// Resolve interprets rel against d: relative labels are appended under d,
// absolute names are returned unchanged.
func (d Domain) Resolve(rel Domain) Domain {
	if rel.absolute {
		return rel
	}
	labels := make([]string, 0, len(d.labels)+len(rel.labels))
	labels = append(labels, d.labels...)
	labels = append(labels, rel.labels...)
	return Domain{labels: labels, absolute: d.absolute}
}

// Child returns the domain for a direct child label of d.
func (d Domain) Child(label string) (Domain, error) {
	if err := checkLabel(label); err != nil {
		return Domain{}, err
	}
	labels := make([]string, 0, len(d.labels)+1)
	labels = append(labels, d.labels...)
	labels = append(labels, label)
	return Domain{labels: labels, absolute: d.absolute}, nil
}

// Parent returns the enclosing domain; false for the empty name.
func (d Domain) Parent() (Domain, bool) {
	if len(d.labels) == 0 {
		return Domain{}, false
	}
	return Domain{labels: slices.Clone(d.labels[:len(d.labels)-1]), absolute: d.absolute}, true
}

// IsAbsolute reports whether d is rooted.
func (d Domain) IsAbsolute() bool {
	return d.absolute
}

// Labels returns a copy of the labels, root-first.
func (d Domain) Labels() []string {
	return slices.Clone(d.labels)
}

// Equal compares by labels and absoluteness.
func (d Domain) Equal(other Domain) bool {
	return d.absolute == other.absolute && slices.Equal(d.labels, other.labels)
}

// String renders the canonical form: labels joined leaf-first, with a
// trailing separator iff the name is absolute. This is the byte-exact
// representation used in zone-file output.
func (d Domain) String() string {
	if len(d.labels) == 0 {
		if d.absolute {
			return Separator
		}
		return ""
	}
	parts := make([]string, len(d.labels))
	for i, label := range d.labels {
		parts[len(d.labels)-1-i] = label
	}
	s := strings.Join(parts, Separator)
	if d.absolute {
		s += Separator
	}
	return s
}
