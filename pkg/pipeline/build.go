package pipeline

import (
	"github.com/lingraph/lingraph/pkg/graph"
	"github.com/lingraph/lingraph/pkg/text"
)

// tokenNodeFlags maps token flags onto node flags. Numeric is not
// carried over: the writing schema records numbers through the NUM
// part of speech set by annotation.
func tokenNodeFlags(f text.TokenFlags) graph.NodeFlags {
	var nf graph.NodeFlags
	if f.Has(text.TokenFlagCapitalized) {
		nf |= graph.NodeFlagCapitalized
	}
	if f.Has(text.TokenFlagPunct) {
		nf |= graph.NodeFlagPunct
	}
	if f.Has(text.TokenFlagSentEndStrong) {
		nf |= graph.NodeFlagSentEndStrong
	}
	if f.Has(text.TokenFlagSentEndWeak) {
		nf |= graph.NodeFlagSentEndWeak
	}
	return nf
}

// BuildTokenGraph assembles the writing-schema graph for a token
// sequence: one token node per token in input order, chained with
// directed NEXT edges. Nodes carry the token's codepoint span and
// surface flags; part of speech and lemma labels are filled in later
// by annotation.
func BuildTokenGraph(tokens []text.Token, cfg graph.BuilderConfig) *graph.Graph {
	b := graph.NewBuilder(cfg)
	for i, tok := range tokens {
		id := b.AddNode(
			graph.NodeTypeToken,
			0,
			0,
			graph.Span{Start: uint64(tok.Start), End: uint64(tok.End)},
			tokenNodeFlags(tok.Flags),
			graph.DefaultConfidence,
			0,
		)
		if i > 0 {
			b.AddEdge(id-1, id, graph.EdgeTypeNext,
				graph.DefaultWeight, 0, graph.EdgeFlagDirected, graph.DefaultConfidence, 0)
		}
	}
	return b.Finalize()
}
