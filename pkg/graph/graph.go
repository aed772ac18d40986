package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/questgraph/pkg/model"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a quest graph to JSON bytes.
func MarshalGraph(g *model.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a quest graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *model.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a quest graph as JSON to an io.Writer.
func WriteGraph(g *model.Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*model.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToModel(data), nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

func writeGraphTo(g *model.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromModel(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
