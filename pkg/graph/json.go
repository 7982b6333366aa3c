package graph

import (
	"encoding/json"
	"fmt"
	"io"
)

// =============================================================================
// JSON View - Human-Readable Export
// =============================================================================

// ViewGraph is the JSON-friendly projection of a [Graph]: type codes become
// symbolic names, flags become name arrays, spans become [start, end] pairs.
// It is an export format only - pgraph is the interchange format, and there
// is deliberately no JSON importer.
type ViewGraph struct {
	ID           uint64     `json:"id"`
	Type         string     `json:"type"`
	SourceID     uint64     `json:"source_id,omitempty"`
	Version      uint64     `json:"version"`
	Schema       string     `json:"schema"`
	NodeCount    int        `json:"node_count"`
	EdgeCount    int        `json:"edge_count"`
	ThumbnailLen int        `json:"thumbnail_len,omitempty"`
	Nodes        []ViewNode `json:"nodes"`
	Edges        []ViewEdge `json:"edges"`
}

// ViewNode is the JSON projection of a [Node].
type ViewNode struct {
	ID          uint64    `json:"id"`
	Type        string    `json:"type"`
	SubType     uint8     `json:"sub_type,omitempty"`
	Label       string    `json:"label,omitempty"`
	LabelID     uint64    `json:"label_id,omitempty"`
	Span        [2]uint64 `json:"span"`
	Flags       []string  `json:"flags,omitempty"`
	Confidence  uint8     `json:"confidence"`
	FeaturesRef uint64    `json:"features_ref,omitempty"`
}

// ViewEdge is the JSON projection of an [Edge].
type ViewEdge struct {
	Src        uint64   `json:"src"`
	Dst        uint64   `json:"dst"`
	Type       string   `json:"type"`
	Weight     uint8    `json:"weight"`
	Time       uint64   `json:"time,omitempty"`
	Flags      []string `json:"flags,omitempty"`
	Confidence uint8    `json:"confidence"`
	AttrRef    uint64   `json:"attr_ref,omitempty"`
}

// ViewOptions controls how a view is produced.
type ViewOptions struct {
	// Label resolves a display label for a node, typically the lemma from
	// the run's vocabulary. nil leaves node labels empty (ids still show).
	Label func(Node) string
}

// NewView converts a graph into its JSON-friendly form. Nodes and edges
// keep their slice order, so the output is deterministic for a given graph.
func NewView(g *Graph, opts ViewOptions) ViewGraph {
	v := ViewGraph{
		ID:           g.ID,
		Type:         g.Type.String(),
		SourceID:     g.SourceID,
		Version:      g.Version,
		Schema:       g.Schema.String(),
		NodeCount:    g.NodeCount(),
		EdgeCount:    g.EdgeCount(),
		ThumbnailLen: len(g.Thumbnail),
		Nodes:        make([]ViewNode, len(g.Nodes)),
		Edges:        make([]ViewEdge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		vn := ViewNode{
			ID:          n.ID,
			Type:        n.Type.String(),
			SubType:     n.SubType,
			LabelID:     n.LabelID,
			Span:        [2]uint64{n.Span.Start, n.Span.End},
			Flags:       n.Flags.Names(),
			Confidence:  n.Confidence,
			FeaturesRef: n.FeaturesRef,
		}
		if opts.Label != nil {
			vn.Label = opts.Label(n)
		}
		v.Nodes[i] = vn
	}
	for i, e := range g.Edges {
		v.Edges[i] = ViewEdge{
			Src:        e.Src,
			Dst:        e.Dst,
			Type:       e.Type.String(),
			Weight:     e.Weight,
			Time:       e.Time,
			Flags:      e.Flags.Names(),
			Confidence: e.Confidence,
			AttrRef:    e.AttrRef,
		}
	}
	return v
}

// WriteJSON writes the indented JSON view of a graph to w. It is the plain
// form of [NewView] with no label resolution; pass ViewOptions through
// NewView and encode yourself when labels are needed.
func WriteJSON(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewView(g, ViewOptions{})); err != nil {
		return fmt.Errorf("encode graph view: %w", err)
	}
	return nil
}
