// Package merger combines the normalized trees of independent configuration
// sources into a single tree, detecting conflicts between sources.
package merger

import (
	"sort"
	"strings"

	"github.com/skrail/dnstree"
)

// Merge folds trees, given in source order, into one tree. List-capable
// record types concatenate across sources in that order; single-valued
// types must agree structurally (TTL included) wherever more than one
// source defines them, otherwise a dnstree.MergeConflictError is returned.
// Includes concatenate in source order, duplicates preserved. The result
// shares no structure with the inputs.
func Merge(trees []*dnstree.Node, schema dnstree.Schema) (*dnstree.Node, error) {
	return merge(trees, schema, nil)
}

func merge(trees []*dnstree.Node, schema dnstree.Schema, path []string) (*dnstree.Node, error) {
	out := &dnstree.Node{}
	records := make([]dnstree.RecordSet, 0, len(trees))
	parents := make([]dnstree.RecordSet, 0, len(trees))
	for _, tree := range trees {
		if tree == nil {
			continue
		}
		records = append(records, tree.Records)
		parents = append(parents, tree.Parent)
		out.Includes = append(out.Includes, tree.Includes...)
	}

	var err error
	if out.Records, err = mergeSets(records, schema, path); err != nil {
		return nil, err
	}
	if out.Parent, err = mergeSets(parents, schema, path); err != nil {
		return nil, err
	}

	names := childNames(trees)
	if len(names) > 0 {
		out.Children = make(map[string]*dnstree.Node, len(names))
		for _, name := range names {
			children := make([]*dnstree.Node, 0, len(trees))
			for _, tree := range trees {
				if tree != nil {
					children = append(children, tree.Children[name])
				}
			}
			childPath := append(path[:len(path):len(path)], name)
			merged, err := merge(children, schema, childPath)
			if err != nil {
				return nil, err
			}
			out.Children[name] = merged
		}
	}
	return out, nil
}

func mergeSets(sets []dnstree.RecordSet, schema dnstree.Schema, path []string) (dnstree.RecordSet, error) {
	names := typeNames(sets)
	if len(names) == 0 {
		return nil, nil
	}
	out := make(dnstree.RecordSet, len(names))
	for _, typeName := range names {
		if schema.MultiValued(typeName) {
			var merged []dnstree.Record
			for _, rs := range sets {
				for _, record := range rs[typeName] {
					merged = append(merged, cloneRecord(record))
				}
			}
			if len(merged) > 0 {
				out[typeName] = merged
			}
			continue
		}
		var chosen *dnstree.Record
		for _, rs := range sets {
			for _, record := range rs[typeName] {
				if chosen == nil {
					c := cloneRecord(record)
					chosen = &c
					continue
				}
				if !chosen.Equal(record) {
					return nil, &dnstree.MergeConflictError{
						Domain: pathString(path),
						Type:   typeName,
						A:      *chosen,
						B:      record,
					}
				}
			}
		}
		// A type can be present with an empty record list; nothing to keep.
		if chosen != nil {
			out[typeName] = []dnstree.Record{*chosen}
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func cloneRecord(r dnstree.Record) dnstree.Record {
	if r.TTL != nil {
		ttl := *r.TTL
		r.TTL = &ttl
	}
	r.Data = append([]string(nil), r.Data...)
	return r
}

// typeNames returns the union of record type names, sorted for
// deterministic traversal.
func typeNames(sets []dnstree.RecordSet) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rs := range sets {
		for typeName := range rs {
			if !seen[typeName] {
				seen[typeName] = true
				names = append(names, typeName)
			}
		}
	}
	sort.Strings(names)
	return names
}

func childNames(trees []*dnstree.Node) []string {
	seen := make(map[string]bool)
	var names []string
	for _, tree := range trees {
		if tree == nil {
			continue
		}
		for name := range tree.Children {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// pathString renders a node path leaf-first, the way the name would appear
// in a source; "@" is the tree root.
func pathString(path []string) string {
	if len(path) == 0 {
		return "@"
	}
	parts := make([]string, len(path))
	for i, label := range path {
		parts[len(path)-1-i] = label
	}
	return strings.Join(parts, ".")
}
