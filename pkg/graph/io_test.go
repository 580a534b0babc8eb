package graph

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	g, err := New(3, []Edge{{U: 0, V: 1, W: 2}, {U: 1, V: 2, W: 3}, {U: 0, V: 2, W: 10}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.N() != 3 || got.EdgeCount() != 3 {
		t.Errorf("round trip: n = %d edges = %d, want 3 and 3", got.N(), got.EdgeCount())
	}
	if got.Edges()[2] != (Edge{U: 0, V: 2, W: 10}) {
		t.Errorf("round trip: edge[2] = %v, want {0 2 10}", got.Edges()[2])
	}
}

func TestMarshalSchema(t *testing.T) {
	g, err := New(2, []Edge{{U: 0, V: 1, W: 5}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	for _, want := range []string{`"nodes": 2`, `"u": 0`, `"v": 1`, `"w": 5`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Marshal() missing %q:\n%s", want, data)
		}
	}
}

func TestReadRejectsMalformedGraph(t *testing.T) {
	_, err := Unmarshal([]byte(`{"nodes": 2, "edges": [{"u": 0, "v": 5, "w": 1}]}`))
	if !errors.Is(err, ErrEdgeEndpointOutOfRange) {
		t.Errorf("Unmarshal() error = %v, want ErrEdgeEndpointOutOfRange", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.json")

	g, err := New(2, []Edge{{U: 0, V: 1, W: 1}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := WriteFile(g, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got.N() != 2 || got.EdgeCount() != 1 {
		t.Errorf("ReadFile(): n = %d edges = %d, want 2 and 1", got.N(), got.EdgeCount())
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want fs not-exist", err)
	}
}
