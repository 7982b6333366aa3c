package render

import (
	"strings"
	"testing"

	"github.com/lingraph/lingraph/pkg/graph"
)

// chainGraph builds a small token chain matching the text "He said stop."
func chainGraph(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(graph.BuilderConfig{GraphID: 1})
	spans := []graph.Span{{Start: 0, End: 2}, {Start: 3, End: 7}, {Start: 8, End: 12}, {Start: 12, End: 13}}
	flags := []graph.NodeFlags{graph.NodeFlagCapitalized, 0, 0, graph.NodeFlagPunct | graph.NodeFlagSentEndStrong}
	for i, sp := range spans {
		id := b.AddNode(graph.NodeTypeToken, 0, 0, sp, flags[i], graph.DefaultConfidence, 0)
		if i > 0 {
			b.AddEdge(id-1, id, graph.EdgeTypeNext, graph.DefaultWeight, 0, graph.EdgeFlagDirected, graph.DefaultConfidence, 0)
		}
	}
	return b.Finalize()
}

func TestToDOTStructure(t *testing.T) {
	g := chainGraph(t)
	dot := ToDOT(g, Options{})

	if !strings.HasPrefix(dot, "digraph lingraph {\n") {
		t.Errorf("missing digraph header: %q", dot[:30])
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("missing closing brace")
	}
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("default rankdir should be LR")
	}
	for _, want := range []string{"n0 [", "n1 [", "n2 [", "n3 ["} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing node statement %q", want)
		}
	}
	for _, want := range []string{"n0 -> n1;", "n1 -> n2;", "n2 -> n3;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing edge statement %q", want)
		}
	}
}

func TestToDOTDeterministic(t *testing.T) {
	g := chainGraph(t)
	first := ToDOT(g, Options{})
	for i := 0; i < 5; i++ {
		if got := ToDOT(g, Options{}); got != first {
			t.Fatalf("output differs between calls:\n%s\nvs\n%s", first, got)
		}
	}
}

func TestToDOTDefaultLabels(t *testing.T) {
	g := chainGraph(t)
	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, `n0 [label="0"]`) {
		t.Errorf("default label should be the node id, got:\n%s", dot)
	}
}

func TestToDOTTokenLabels(t *testing.T) {
	input := "He said stop."
	g := chainGraph(t)
	dot := ToDOT(g, Options{LabelFunc: TokenLabeler(input)})

	for _, want := range []string{`label="He"`, `label="said"`, `label="stop"`, `label="."`} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %s in:\n%s", want, dot)
		}
	}
}

func TestToDOTEscapesLabels(t *testing.T) {
	b := graph.NewBuilder(graph.BuilderConfig{})
	b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{Start: 0, End: 1}, 0, graph.DefaultConfidence, 0)
	g := b.Finalize()

	dot := ToDOT(g, Options{LabelFunc: func(graph.Node) string { return `say "hi"` }})
	if !strings.Contains(dot, `label="say \"hi\""`) {
		t.Errorf("quotes not escaped:\n%s", dot)
	}
}

func TestToDOTTruncatesLabels(t *testing.T) {
	b := graph.NewBuilder(graph.BuilderConfig{})
	b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{Start: 0, End: 1}, 0, graph.DefaultConfidence, 0)
	g := b.Finalize()

	long := strings.Repeat("a", 50)
	dot := ToDOT(g, Options{MaxLabel: 10, LabelFunc: func(graph.Node) string { return long }})

	want := `label="` + strings.Repeat("a", 9) + `…"`
	if !strings.Contains(dot, want) {
		t.Errorf("label not truncated to 10 runes:\n%s", dot)
	}
	if strings.Contains(dot, strings.Repeat("a", 10)) {
		t.Error("truncated label still contains 10+ runes")
	}
}

func TestToDOTStopStyling(t *testing.T) {
	b := graph.NewBuilder(graph.BuilderConfig{})
	b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{Start: 0, End: 3}, graph.NodeFlagStop, graph.DefaultConfidence, 0)
	b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{Start: 4, End: 8}, 0, graph.DefaultConfidence, 0)
	g := b.Finalize()

	dot := ToDOT(g, Options{})
	lines := strings.Split(dot, "\n")

	var stopLine, plainLine string
	for _, ln := range lines {
		if strings.Contains(ln, "n0 [") {
			stopLine = ln
		}
		if strings.Contains(ln, "n1 [") {
			plainLine = ln
		}
	}
	if !strings.Contains(stopLine, "fillcolor=lightgrey") {
		t.Errorf("stopword node not greyed: %s", stopLine)
	}
	if strings.Contains(plainLine, "fillcolor=lightgrey") {
		t.Errorf("plain node should keep default fill: %s", plainLine)
	}
}

func TestToDOTPunctStyling(t *testing.T) {
	b := graph.NewBuilder(graph.BuilderConfig{})
	b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{Start: 0, End: 1}, graph.NodeFlagPunct, graph.DefaultConfidence, 0)
	g := b.Finalize()

	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, "shape=circle") {
		t.Errorf("punctuation node should be circular:\n%s", dot)
	}
}

func TestToDOTEdgeLabels(t *testing.T) {
	b := graph.NewBuilder(graph.BuilderConfig{})
	b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{Start: 0, End: 1}, 0, graph.DefaultConfidence, 0)
	b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{Start: 2, End: 3}, 0, graph.DefaultConfidence, 0)
	b.AddEdge(0, 1, graph.EdgeTypeNext, graph.DefaultWeight, 0, graph.EdgeFlagDirected, graph.DefaultConfidence, 0)
	b.AddEdge(1, 0, graph.EdgeTypeCoref, graph.DefaultWeight, 0, graph.EdgeFlagDirected, graph.DefaultConfidence, 0)
	g := b.Finalize()

	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, "n0 -> n1;") {
		t.Errorf("next edge should be unlabeled:\n%s", dot)
	}
	if !strings.Contains(dot, `n1 -> n0 [label="coref"];`) {
		t.Errorf("coref edge should carry its type name:\n%s", dot)
	}
}

func TestToDOTEdgeLabelOverride(t *testing.T) {
	b := graph.NewBuilder(graph.BuilderConfig{})
	b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{Start: 0, End: 1}, 0, graph.DefaultConfidence, 0)
	b.AddNode(graph.NodeTypeToken, 0, 0, graph.Span{Start: 2, End: 3}, 0, graph.DefaultConfidence, 0)
	b.AddEdge(0, 1, graph.EdgeTypeNext, graph.DefaultWeight, 0, graph.EdgeFlagDirected, graph.DefaultConfidence, 0)
	g := b.Finalize()

	dot := ToDOT(g, Options{EdgeLabelFunc: func(e graph.Edge) string { return "w255" }})
	if !strings.Contains(dot, `n0 -> n1 [label="w255"];`) {
		t.Errorf("edge label override ignored:\n%s", dot)
	}
}

func TestToDOTRankdirOverride(t *testing.T) {
	g := chainGraph(t)
	dot := ToDOT(g, Options{Rankdir: "TB"})
	if !strings.Contains(dot, "rankdir=TB;") {
		t.Error("rankdir override ignored")
	}
}

func TestToDOTEmptyGraph(t *testing.T) {
	g := graph.NewBuilder(graph.BuilderConfig{}).Finalize()
	dot := ToDOT(g, Options{})

	if !strings.HasPrefix(dot, "digraph lingraph {\n") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty graph should still emit a valid digraph:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Error("empty graph should have no edges")
	}
}

func TestTokenLabeler(t *testing.T) {
	label := TokenLabeler("宇宙 big")

	tests := []struct {
		name string
		span graph.Span
		want string
	}{
		{"multibyte", graph.Span{Start: 0, End: 2}, "宇宙"},
		{"ascii tail", graph.Span{Start: 3, End: 6}, "big"},
		{"end out of range", graph.Span{Start: 3, End: 99}, "7"},
		{"empty span", graph.Span{Start: 2, End: 2}, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := graph.Node{ID: 7, Span: tt.span}
			if got := label(n); got != tt.want {
				t.Errorf("label = %q, want %q", got, tt.want)
			}
		})
	}
}
