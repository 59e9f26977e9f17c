package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// recordSet is the object form of an input file
type recordSet struct {
	Nodes []Record `yaml:"nodes"`
}

// ReadRecords decodes input records from r. The document is either a list
// of records or an object with a "nodes" list, in YAML or JSON.
func ReadRecords(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []Record{}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.SequenceNode:
		var records []Record
		if err := root.Decode(&records); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		return records, nil
	case yaml.MappingNode:
		var set recordSet
		if err := root.Decode(&set); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		return set.Nodes, nil
	default:
		return nil, fmt.Errorf("parse records: expected a list or a nodes object")
	}
}

// ReadRecordsFile reads records from path; "-" reads standard input.
func ReadRecordsFile(path string) ([]Record, error) {
	if path == "-" {
		return ReadRecords(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecords(f)
}
