package graph

import (
	"errors"
	"slices"
)

// ErrInvalidThumbnailLength is returned by [Builder.SetThumbnail] (and by
// pgraph encoding) when a thumbnail is not exactly 0, 64, or 128 bytes.
var ErrInvalidThumbnailLength = errors.New("thumbnail must be 0, 64, or 128 bytes")

// Default field values for nodes and edges. The schema treats 255 as
// "certain" / "full weight", so plain structural elements use these.
const (
	DefaultConfidence uint8 = 255
	DefaultWeight     uint8 = 255
)

// BuilderConfig carries the graph-level header fields for a new builder.
// Zero values select the schema defaults: [GraphTypeHetero], version 1,
// and [SchemaWriting].
type BuilderConfig struct {
	GraphID  uint64
	Type     GraphType
	SourceID uint64
	Version  uint64
	Schema   SchemaID
}

// Builder accumulates nodes and edges and assigns dense ids.
//
// The zero value is not usable - use [NewBuilder]. Builder is not safe for
// concurrent use.
type Builder struct {
	graphID  uint64
	typ      GraphType
	sourceID uint64
	version  uint64
	schema   SchemaID
	nodes    []Node
	edges    []Edge
	thumb    []byte
}

// NewBuilder creates a builder for a graph with the given header fields,
// applying schema defaults for zero-valued Type, Version, and Schema.
func NewBuilder(cfg BuilderConfig) *Builder {
	if cfg.Type == 0 {
		cfg.Type = GraphTypeHetero
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if cfg.Schema == 0 {
		cfg.Schema = SchemaWriting
	}
	return &Builder{
		graphID:  cfg.GraphID,
		typ:      cfg.Type,
		sourceID: cfg.SourceID,
		version:  cfg.Version,
		schema:   cfg.Schema,
	}
}

// AddNode appends a node and returns its id. Ids are dense and 0-based:
// the first node gets id 0, the next id 1, and so on, in insertion order.
//
// The parameters mirror the node record exactly; use [DefaultConfidence]
// for ordinary nodes (255 = certain).
func (b *Builder) AddNode(typ NodeType, subType uint8, labelID uint64, span Span, flags NodeFlags, confidence uint8, featuresRef uint64) uint64 {
	id := uint64(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		ID:          id,
		Type:        typ,
		SubType:     subType,
		FeaturesRef: featuresRef,
		Span:        span,
		Flags:       flags,
		Confidence:  confidence,
		LabelID:     labelID,
	})
	return id
}

// AddEdge appends an edge from src to dst and returns its index in the
// edge list. Endpoints are not checked against the node list: referencing
// a node of another graph is legal (see the package documentation).
//
// Plain sequential edges use [DefaultWeight], time 0, [EdgeFlagDirected],
// and [DefaultConfidence].
func (b *Builder) AddEdge(src, dst uint64, typ EdgeType, weight uint8, time uint64, flags EdgeFlags, confidence uint8, attrRef uint64) int {
	b.edges = append(b.edges, Edge{
		Src:        src,
		Dst:        dst,
		Type:       typ,
		Weight:     weight,
		Time:       time,
		Flags:      flags,
		Confidence: confidence,
		AttrRef:    attrRef,
	})
	return len(b.edges) - 1
}

// SetThumbnail attaches a graph-level feature vector. The length must be
// 0, 64, or 128 bytes; anything else returns [ErrInvalidThumbnailLength].
// nil or empty clears the thumbnail. The bytes are copied.
func (b *Builder) SetThumbnail(thumb []byte) error {
	if !ValidThumbnailLen(len(thumb)) {
		return ErrInvalidThumbnailLength
	}
	if len(thumb) == 0 {
		b.thumb = nil
		return nil
	}
	b.thumb = slices.Clone(thumb)
	return nil
}

// NodeCount returns the number of nodes added so far.
func (b *Builder) NodeCount() int { return len(b.nodes) }

// EdgeCount returns the number of edges added so far.
func (b *Builder) EdgeCount() int { return len(b.edges) }

// Nodes returns the builder's node list for in-place annotation before
// [Builder.Finalize]. The slice aliases builder state: appending nodes
// through any other means than AddNode breaks the dense-id invariant.
func (b *Builder) Nodes() []Node { return b.nodes }

// Finalize copies the accumulated nodes, edges, and thumbnail into an
// independent [Graph]. The builder remains usable; later additions do not
// affect graphs finalized earlier.
func (b *Builder) Finalize() *Graph {
	return &Graph{
		ID:        b.graphID,
		Type:      b.typ,
		SourceID:  b.sourceID,
		Version:   b.version,
		Schema:    b.schema,
		Nodes:     slices.Clone(b.nodes),
		Edges:     slices.Clone(b.edges),
		Thumbnail: slices.Clone(b.thumb),
	}
}
