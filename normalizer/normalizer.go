// Package normalizer resolves TTL inheritance for one source's raw record
// tree: after normalization every record carries its effective TTL and the
// node-level ttl defaults have been consumed.
package normalizer

import "github.com/skrail/dnstree"

// Normalize returns a normalized copy of node. A record's effective TTL is
// its own declared TTL if present, else the nearest ancestor node's declared
// TTL, else defaultTTL. The input tree is left untouched and shares no
// structure with the result.
func Normalize(node *dnstree.Node, defaultTTL uint32) *dnstree.Node {
	if node == nil {
		return &dnstree.Node{}
	}
	inherited := defaultTTL
	if node.TTL != nil {
		inherited = *node.TTL
	}
	out := &dnstree.Node{
		Records: normalizeSet(node.Records, inherited),
		Parent:  normalizeSet(node.Parent, inherited),
	}
	if len(node.Includes) > 0 {
		out.Includes = append([]dnstree.Include(nil), node.Includes...)
	}
	if len(node.Children) > 0 {
		out.Children = make(map[string]*dnstree.Node, len(node.Children))
		for name, child := range node.Children {
			out.Children[name] = Normalize(child, inherited)
		}
	}
	return out
}

func normalizeSet(rs dnstree.RecordSet, inherited uint32) dnstree.RecordSet {
	if len(rs) == 0 {
		return nil
	}
	out := make(dnstree.RecordSet, len(rs))
	for typeName, records := range rs {
		normalized := make([]dnstree.Record, len(records))
		for i, record := range records {
			effective := inherited
			if record.TTL != nil {
				effective = *record.TTL
			}
			record.TTL = &effective
			record.Data = append([]string(nil), record.Data...)
			normalized[i] = record
		}
		out[typeName] = normalized
	}
	return out
}
