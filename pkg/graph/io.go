package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// File is the canonical serialization format for graphs:
//
//	{
//	  "nodes": 3,
//	  "edges": [
//	    {"u": 0, "v": 1, "w": 2},
//	    {"u": 1, "v": 2, "w": 3}
//	  ]
//	}
//
// The same schema is produced by the dataset generator and accepted by the
// CLI and the HTTP API.
type File struct {
	Nodes int    `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Marshal converts a graph to indented JSON bytes.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a validated graph.
func Unmarshal(data []byte) (*Graph, error) {
	return Read(bytes.NewReader(data))
}

// Write writes a graph as JSON to w.
func Write(g *Graph, w io.Writer) error {
	out := File{Nodes: g.N(), Edges: g.Edges()}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON graph from r and validates it via [New].
func Read(r io.Reader) (*Graph, error) {
	var data File
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return New(data.Nodes, data.Edges)
}

// WriteFile writes a graph to a JSON file created with 0644 permissions.
func WriteFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// ReadFile reads a JSON file and returns the decoded, validated graph.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
