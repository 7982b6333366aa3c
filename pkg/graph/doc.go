// Package graph provides the in-memory model for language graphs: typed
// nodes and edges over text spans, plus the builder that assembles them.
//
// # Overview
//
// lingraph represents analyzed text as a heterogeneous graph. Token nodes
// carry codepoint spans into the source text and bit-packed flags (stop
// word, capitalized, sentence end); edges carry typed relations such as
// linear adjacency (NEXT) or dependency (DEP). The model is wire-faithful:
// every field maps one-to-one onto the pgraph binary format, so a graph
// round-trips through encode/decode without loss.
//
// # Basic Usage
//
// Build graphs through [Builder], which assigns dense 0-based node ids in
// insertion order:
//
//	b := graph.NewBuilder(graph.BuilderConfig{GraphID: 7})
//	a := b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{Start: 0, End: 3},
//		0, graph.DefaultConfidence, 0)
//	c := b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{Start: 4, End: 7},
//		0, graph.DefaultConfidence, 0)
//	b.AddEdge(a, c, graph.EdgeTypeNext, graph.DefaultWeight, 0,
//		graph.EdgeFlagDirected, graph.DefaultConfidence, 0)
//	g := b.Finalize()
//
// [Builder.Finalize] copies the accumulated state into an independent
// [Graph]; the builder stays usable afterwards.
//
// # Permissive Edges
//
// Edge endpoints are not validated against the node list, neither by the
// builder nor by the codec. Edges may reference nodes that live in another
// graph (cross-graph links are part of the schema), so a "dangling"
// endpoint is legal data, not corruption.
//
// # Mutability
//
// Nodes and edges are plain value records. After construction the only
// sanctioned mutation is the morphology annotation pass, which overwrites
// each token node's sub-type, label and stop flag in place (see the morph
// package). Everything else treats Graph as read-only.
package graph
