package graph

import "slices"

// Span is a half-open range [Start, End) of codepoint offsets into the
// source text. The zero value is the empty span at offset 0.
type Span struct {
	Start uint64
	End   uint64
}

// Len returns the number of codepoints covered by the span.
// A degenerate span (End < Start) has length 0.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return int(s.End - s.Start)
}

// Node is a vertex in a language graph.
//
// For token nodes, Span covers the token's codepoints in the source text,
// SubType holds the part-of-speech code after annotation, and LabelID
// references the lemma in the run's vocabulary (0 = unlabeled). Confidence
// is a raw 0-255 scale where 255 means certain.
type Node struct {
	ID          uint64    // Dense 0-based id assigned by the builder
	Type        NodeType  // What the node stands for (token, entity, ...)
	SubType     uint8     // Type-dependent refinement (POS code for tokens)
	FeaturesRef uint64    // Reference into an external feature table (0 = none)
	Span        Span      // Codepoint span in the source text
	Flags       NodeFlags // Bit-packed properties
	Confidence  uint8     // 0-255, 255 = certain
	LabelID     uint64    // Vocabulary id of the node label (0 = unlabeled)
}

// Edge is a typed relation between two nodes. Src and Dst are node ids;
// they are not validated against any node list (cross-graph references
// are legal). Time is a slot index for temporal graphs, 0 when unused.
type Edge struct {
	Src        uint64
	Dst        uint64
	Type       EdgeType
	Weight     uint8 // 0-255, 255 = full weight
	Time       uint64
	Flags      EdgeFlags
	Confidence uint8 // 0-255, 255 = certain
	AttrRef    uint64
}

// Graph is a finalized language graph. Node and edge counts are always
// derived from the slices, so they cannot drift from the actual content.
//
// Thumbnail is an optional graph-level feature vector of exactly 64 or
// 128 bytes (empty means absent); it is carried opaquely by the codec.
type Graph struct {
	ID        uint64
	Type      GraphType
	SourceID  uint64
	Version   uint64
	Schema    SchemaID
	Nodes     []Node
	Edges     []Edge
	Thumbnail []byte
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Clone returns a deep copy of the graph. Useful when a caller wants to
// annotate or otherwise mutate node records without touching the original.
func (g *Graph) Clone() *Graph {
	cp := *g
	cp.Nodes = slices.Clone(g.Nodes)
	cp.Edges = slices.Clone(g.Edges)
	cp.Thumbnail = slices.Clone(g.Thumbnail)
	return &cp
}

// ValidThumbnailLen reports whether n is a legal thumbnail byte length.
// Thumbnails are absent (0) or fixed-size feature vectors of 64 or 128
// bytes; nothing else is encodable.
func ValidThumbnailLen(n int) bool { return n == 0 || n == 64 || n == 128 }
