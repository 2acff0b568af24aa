package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skrail/dnstree"
)

// Reserved mapping keys inside a node; every other key names a child node.
const (
	keyTTL     = "ttl"
	keyRecords = "records"
	keyParent  = "parent"
	keyInclude = "include"
)

// LoadFile reads and parses one source file.
func LoadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, err
	}
	tree, err := LoadFromString(string(data))
	if err != nil {
		return Source{}, fmt.Errorf("%s: %w", path, err)
	}
	return Source{Name: path, Tree: tree}, nil
}

// LoadFromString parses a source document into a raw record tree.
func LoadFromString(data string) (*dnstree.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(data), &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &dnstree.Node{}, nil
	}
	return nodeFromYaml(doc.Content[0])
}

func nodeFromYaml(n *yaml.Node) (*dnstree.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a node mapping", n.Line)
	}
	node := &dnstree.Node{}
	for i := 0; i < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		switch key.Value {
		case keyTTL:
			ttl, err := parseTTL(value.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: ttl: %w", value.Line, err)
			}
			node.TTL = &ttl
		case keyRecords:
			rs, err := recordSetFromYaml(value)
			if err != nil {
				return nil, err
			}
			node.Records = rs
		case keyParent:
			rs, err := recordSetFromYaml(value)
			if err != nil {
				return nil, err
			}
			node.Parent = rs
		case keyInclude:
			includes, err := includesFromYaml(value)
			if err != nil {
				return nil, err
			}
			node.Includes = includes
		default:
			if _, err := dnstree.NewDomain([]string{key.Value}, false); err != nil {
				return nil, fmt.Errorf("line %d: %w", key.Line, err)
			}
			child, err := nodeFromYaml(value)
			if err != nil {
				return nil, err
			}
			if node.Children == nil {
				node.Children = make(map[string]*dnstree.Node)
			}
			if _, ok := node.Children[key.Value]; ok {
				return nil, fmt.Errorf("line %d: duplicate node %q", key.Line, key.Value)
			}
			node.Children[key.Value] = child
		}
	}
	return node, nil
}

func recordSetFromYaml(n *yaml.Node) (dnstree.RecordSet, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a record mapping", n.Line)
	}
	rs := make(dnstree.RecordSet, len(n.Content)/2)
	for i := 0; i < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		records, err := recordsFromYaml(key.Value, value)
		if err != nil {
			return nil, err
		}
		rs[key.Value] = records
	}
	return rs, nil
}

func recordsFromYaml(typeName string, n *yaml.Node) ([]dnstree.Record, error) {
	if n.Kind == yaml.SequenceNode {
		records := make([]dnstree.Record, 0, len(n.Content))
		for _, item := range n.Content {
			record, err := recordFromYaml(typeName, item)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
		return records, nil
	}
	record, err := recordFromYaml(typeName, n)
	if err != nil {
		return nil, err
	}
	return []dnstree.Record{record}, nil
}

func recordFromYaml(typeName string, n *yaml.Node) (dnstree.Record, error) {
	record := dnstree.Record{Type: typeName, Class: DefaultClass}
	switch n.Kind {
	case yaml.ScalarNode:
		record.Data = strings.Fields(n.Value)
	case yaml.MappingNode:
		for i := 0; i < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			switch key.Value {
			case "class":
				record.Class = value.Value
			case "ttl":
				ttl, err := parseTTL(value.Value)
				if err != nil {
					return dnstree.Record{}, fmt.Errorf("line %d: %s ttl: %w", value.Line, typeName, err)
				}
				record.TTL = &ttl
			case "data":
				data, err := dataFromYaml(value)
				if err != nil {
					return dnstree.Record{}, fmt.Errorf("line %d: %s: %w", value.Line, typeName, err)
				}
				record.Data = data
			default:
				return dnstree.Record{}, fmt.Errorf("line %d: unknown %s record field %q", key.Line, typeName, key.Value)
			}
		}
	default:
		return dnstree.Record{}, fmt.Errorf("line %d: expected a %s record value", n.Line, typeName)
	}
	if len(record.Data) == 0 {
		return dnstree.Record{}, fmt.Errorf("line %d: %s record has no data", n.Line, typeName)
	}
	return record, nil
}

func dataFromYaml(n *yaml.Node) ([]string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return strings.Fields(n.Value), nil
	case yaml.SequenceNode:
		fields := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: data fields must be scalars", item.Line)
			}
			fields = append(fields, item.Value)
		}
		return fields, nil
	default:
		return nil, fmt.Errorf("line %d: expected data fields", n.Line)
	}
}

func includesFromYaml(n *yaml.Node) ([]dnstree.Include, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return []dnstree.Include{{File: n.Value}}, nil
	case yaml.SequenceNode:
		includes := make([]dnstree.Include, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: include entries must be file paths", item.Line)
			}
			includes = append(includes, dnstree.Include{File: item.Value})
		}
		return includes, nil
	default:
		return nil, fmt.Errorf("line %d: expected include file paths", n.Line)
	}
}

// parseTTL accepts plain seconds or a value with an s/m/h/d/w suffix.
func parseTTL(s string) (uint32, error) {
	digits := s
	multiplier := uint64(1)
	switch {
	case strings.HasSuffix(s, "s"):
		digits = strings.TrimSuffix(s, "s")
	case strings.HasSuffix(s, "m"):
		digits, multiplier = strings.TrimSuffix(s, "m"), 60
	case strings.HasSuffix(s, "h"):
		digits, multiplier = strings.TrimSuffix(s, "h"), 3600
	case strings.HasSuffix(s, "d"):
		digits, multiplier = strings.TrimSuffix(s, "d"), 86400
	case strings.HasSuffix(s, "w"):
		digits, multiplier = strings.TrimSuffix(s, "w"), 604800
	}
	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	seconds := value * multiplier
	if value > math.MaxUint32 || seconds > math.MaxUint32 {
		return 0, fmt.Errorf("duration %q exceeds the 32-bit TTL range", s)
	}
	return uint32(seconds), nil
}
