package graph

import (
	"errors"
	"testing"
)

func TestBuilderAssignsDenseIDs(t *testing.T) {
	b := NewBuilder(BuilderConfig{GraphID: 42})

	for want := uint64(0); want < 5; want++ {
		got := b.AddNode(NodeTypeToken, 0, 0, Span{Start: want, End: want + 1}, 0, DefaultConfidence, 0)
		if got != want {
			t.Fatalf("AddNode returned id %d, want %d", got, want)
		}
	}

	g := b.Finalize()
	for i, n := range g.Nodes {
		if n.ID != uint64(i) {
			t.Errorf("node %d has ID %d, want %d", i, n.ID, i)
		}
	}
}

func TestBuilderConfigDefaults(t *testing.T) {
	tests := []struct {
		name        string
		cfg         BuilderConfig
		wantType    GraphType
		wantVersion uint64
		wantSchema  SchemaID
	}{
		{
			name:        "zero config selects schema defaults",
			cfg:         BuilderConfig{},
			wantType:    GraphTypeHetero,
			wantVersion: 1,
			wantSchema:  SchemaWriting,
		},
		{
			name:        "explicit values preserved",
			cfg:         BuilderConfig{Type: GraphTypeTree, Version: 3, Schema: SchemaID(9)},
			wantType:    GraphTypeTree,
			wantVersion: 3,
			wantSchema:  SchemaID(9),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewBuilder(tt.cfg).Finalize()
			if g.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", g.Type, tt.wantType)
			}
			if g.Version != tt.wantVersion {
				t.Errorf("Version = %d, want %d", g.Version, tt.wantVersion)
			}
			if g.Schema != tt.wantSchema {
				t.Errorf("Schema = %v, want %v", g.Schema, tt.wantSchema)
			}
		})
	}
}

func TestBuilderAddEdge(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	a := b.AddNode(NodeTypeToken, 0, 0, Span{End: 1}, 0, DefaultConfidence, 0)

	// Endpoints are deliberately unvalidated: dst 99 references a node of
	// another graph and must be accepted as-is.
	idx := b.AddEdge(a, 99, EdgeTypeNext, DefaultWeight, 0, EdgeFlagDirected, DefaultConfidence, 0)
	if idx != 0 {
		t.Fatalf("first AddEdge returned index %d, want 0", idx)
	}
	idx = b.AddEdge(99, a, EdgeTypeCoref, 7, 3, EdgeFlagSymmetric|EdgeFlagInferred, 128, 11)
	if idx != 1 {
		t.Fatalf("second AddEdge returned index %d, want 1", idx)
	}

	g := b.Finalize()
	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount = %d, want 2", g.EdgeCount())
	}
	e := g.Edges[1]
	if e.Src != 99 || e.Dst != a || e.Type != EdgeTypeCoref || e.Weight != 7 ||
		e.Time != 3 || e.Flags != EdgeFlagSymmetric|EdgeFlagInferred || e.Confidence != 128 || e.AttrRef != 11 {
		t.Errorf("edge fields not preserved: %+v", e)
	}
}

func TestSetThumbnail(t *testing.T) {
	tests := []struct {
		name    string
		len     int
		wantErr bool
	}{
		{"nil clears", 0, false},
		{"64 bytes accepted", 64, false},
		{"128 bytes accepted", 128, false},
		{"1 byte rejected", 1, true},
		{"63 bytes rejected", 63, true},
		{"65 bytes rejected", 65, true},
		{"129 bytes rejected", 129, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(BuilderConfig{})
			var thumb []byte
			if tt.len > 0 {
				thumb = make([]byte, tt.len)
				thumb[0] = 0xAB
			}
			err := b.SetThumbnail(thumb)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidThumbnailLength) {
					t.Fatalf("SetThumbnail(%d bytes) error = %v, want ErrInvalidThumbnailLength", tt.len, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetThumbnail(%d bytes) unexpected error: %v", tt.len, err)
			}
			g := b.Finalize()
			if len(g.Thumbnail) != tt.len {
				t.Errorf("Thumbnail length = %d, want %d", len(g.Thumbnail), tt.len)
			}
		})
	}
}

func TestSetThumbnailCopies(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	thumb := make([]byte, 64)
	thumb[0] = 1
	if err := b.SetThumbnail(thumb); err != nil {
		t.Fatal(err)
	}
	thumb[0] = 99

	if got := b.Finalize().Thumbnail[0]; got != 1 {
		t.Errorf("thumbnail aliases caller slice: byte 0 = %d, want 1", got)
	}
}

func TestFinalizeIsIndependent(t *testing.T) {
	b := NewBuilder(BuilderConfig{GraphID: 1})
	b.AddNode(NodeTypeToken, 0, 0, Span{End: 2}, 0, DefaultConfidence, 0)

	first := b.Finalize()
	b.AddNode(NodeTypeToken, 0, 0, Span{Start: 3, End: 5}, 0, DefaultConfidence, 0)
	b.AddEdge(0, 1, EdgeTypeNext, DefaultWeight, 0, EdgeFlagDirected, DefaultConfidence, 0)
	second := b.Finalize()

	if first.NodeCount() != 1 || first.EdgeCount() != 0 {
		t.Errorf("earlier graph changed: %d nodes, %d edges", first.NodeCount(), first.EdgeCount())
	}
	if second.NodeCount() != 2 || second.EdgeCount() != 1 {
		t.Errorf("later graph incomplete: %d nodes, %d edges", second.NodeCount(), second.EdgeCount())
	}
}

func TestGraphClone(t *testing.T) {
	b := NewBuilder(BuilderConfig{GraphID: 5})
	b.AddNode(NodeTypeToken, 0, 0, Span{End: 1}, NodeFlagCapitalized, DefaultConfidence, 0)
	b.AddEdge(0, 0, EdgeTypeNext, DefaultWeight, 0, EdgeFlagDirected, DefaultConfidence, 0)
	g := b.Finalize()

	cp := g.Clone()
	cp.Nodes[0].Flags |= NodeFlagStop
	cp.Edges[0].Weight = 1

	if g.Nodes[0].Flags.Has(NodeFlagStop) {
		t.Error("clone shares node storage with original")
	}
	if g.Edges[0].Weight != DefaultWeight {
		t.Error("clone shares edge storage with original")
	}
}
