package text

import "testing"

func TestSegmentTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Sentence
	}{
		{
			name:  "single question",
			input: "Are you okay?",
			want:  []Sentence{{0, 4}},
		},
		{
			name:  "ellipsis closes before capital",
			input: "Okay... I guess. Fine.",
			want:  []Sentence{{0, 2}, {2, 5}, {5, 7}},
		},
		{
			name:  "ellipsis stays open before lowercase",
			input: "wait... maybe",
			want:  []Sentence{{0, 3}},
		},
		{
			name:  "strong end bubbles over closing quote",
			input: "He said “stop.”",
			want:  []Sentence{{0, 6}},
		},
		{
			name:  "opener belongs to the next sentence",
			input: "Wait… “Really?” Yes.",
			want:  []Sentence{{0, 2}, {2, 6}, {6, 8}},
		},
		{
			name:  "trailing ellipsis closes",
			input: "Okay…",
			want:  []Sentence{{0, 2}},
		},
		{
			name:  "ellipsis peeks past punctuation",
			input: "Hm… (Really)",
			want:  []Sentence{{0, 2}, {2, 5}},
		},
		{
			name:  "three plain sentences",
			input: "One. Two. Three.",
			want:  []Sentence{{0, 2}, {2, 4}, {4, 6}},
		},
		{
			name:  "no terminator",
			input: "no terminator here",
			want:  []Sentence{{0, 3}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentTokens(Tokenize(tt.input))
			if len(got) != len(tt.want) {
				t.Fatalf("sentence count = %d, want %d\ngot: %+v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Sentences must cover every token index exactly once, in order.
func TestSegmentTokensPartition(t *testing.T) {
	inputs := []string{
		"He said, “Don’t move.”",
		"Okay... I guess. Fine.",
		"Wait… “Really?” Yes.",
		"One. Two. Three.",
		"no terminator here",
		"x.... y",
		"Stop.» Go.",
	}
	for _, input := range inputs {
		tokens := Tokenize(input)
		next := 0
		for i, sent := range SegmentTokens(tokens) {
			if sent.Start != next {
				t.Errorf("%q: sentence %d starts at %d, want %d", input, i, sent.Start, next)
			}
			if sent.End <= sent.Start {
				t.Errorf("%q: sentence %d is empty: %+v", input, i, sent)
			}
			next = sent.End
		}
		if next != len(tokens) {
			t.Errorf("%q: sentences cover [0,%d), want [0,%d)", input, next, len(tokens))
		}
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Span
	}{
		{
			name:  "quoted command",
			input: "He said, “Don’t move.”",
			want:  []Span{{0, 22}},
		},
		{
			name:  "ellipsis boundary",
			input: "Okay... I guess",
			want:  []Span{{0, 7}, {8, 15}},
		},
		{
			name:  "question",
			input: "Are you okay?",
			want:  []Span{{0, 13}},
		},
		{
			name:  "quotes split across sentences",
			input: "Wait… “Really?” Yes.",
			want:  []Span{{0, 5}, {6, 15}, {16, 20}},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("span count = %d, want %d\ngot: %+v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("span %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
