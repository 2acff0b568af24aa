package config

import "github.com/skrail/dnstree"

// Source is one configuration source: a named raw record tree, as written
// by an operator and not yet normalized.
type Source struct {
	Name string
	Tree *dnstree.Node
}

// DefaultClass is assumed for records that do not state one.
const DefaultClass = "IN"
