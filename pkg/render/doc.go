// Package render draws language graphs as node-link diagrams.
//
// # Overview
//
// This package turns a [graph.Graph] into Graphviz DOT source and
// renders it in-process. Token nodes appear as boxes chained by NEXT
// arrows; stopword nodes are greyed so content words stand out.
//
// # Usage
//
// Convert a graph to DOT, then render:
//
//	dot := render.ToDOT(g, render.Options{
//	    LabelFunc: render.TokenLabeler(input),
//	})
//	svg, err := render.RenderSVG(dot)
//	png, err := render.RenderPNG(dot)
//
// # DOT Format
//
// The [ToDOT] output is deterministic for a given graph and options, so
// it is safe to cache, diff, and test against. It can also be saved and
// processed with external Graphviz tools.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz
// via WebAssembly: no external binaries are required for SVG or PNG
// output.
package render
