package morph

import (
	"github.com/lingraph/lingraph/pkg/graph"
	"github.com/lingraph/lingraph/pkg/text"
)

// AnnotateGraph writes per-token analyses onto a token graph in place:
// node i takes its SubType from the POS code, its LabelID from the lemma
// id, and the stop-word flag when the analysis marked one. Nodes, tokens,
// and morphs align by index; when lengths differ only the common prefix
// is annotated, which is policy rather than an error.
func AnnotateGraph(g *graph.Graph, tokens []text.Token, morphs []Morph) {
	n := min(len(g.Nodes), len(tokens), len(morphs))
	for i := 0; i < n; i++ {
		node := &g.Nodes[i]
		node.SubType = uint8(morphs[i].POS)
		node.LabelID = morphs[i].LemmaID
		if morphs[i].Stop {
			node.Flags |= graph.NodeFlagStop
		}
	}
}
