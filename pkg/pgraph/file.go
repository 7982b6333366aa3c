package pgraph

import (
	"fmt"
	"os"

	"github.com/lingraph/lingraph/pkg/graph"
)

// WriteFile encodes a graph and writes the blob to path with 0644
// permissions. Nothing is written when encoding fails.
func WriteFile(path string, g *graph.Graph) error {
	data, err := Encode(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a pgraph blob from path and decodes it.
// Use [Decode] for in-memory data.
func ReadFile(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	g, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return g, nil
}
