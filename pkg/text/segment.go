package text

// Sentence is a half-open range of token indices produced by
// [SegmentTokens].
type Sentence struct {
	Start int
	End   int
}

// Span is a half-open rune-offset range of the input text.
type Span struct {
	Start int
	End   int
}

// SegmentTokens groups a token stream into sentences. A strong terminator
// always ends the current sentence and extends the boundary over any
// immediately trailing weak-flagged closers. An ellipsis ends it only when
// it is the last token or the next non-punctuation token is capitalized; the
// boundary then sits on the ellipsis itself, so opening quotes start the
// next sentence. Unterminated trailing tokens form a final sentence.
//
// The returned sentences partition the token indices: in order, no gaps, no
// overlaps.
func SegmentTokens(tokens []Token) []Sentence {
	var sentences []Sentence
	n := len(tokens)

	s := 0
	for k := 0; k < n; {
		t := tokens[k]

		if t.Flags.Has(TokenFlagSentEndStrong) {
			end := k
			for j := k + 1; j < n && tokens[j].Flags.Has(TokenFlagSentEndWeak); j++ {
				end = j
			}
			sentences = append(sentences, Sentence{Start: s, End: end + 1})
			s = end + 1
			k = s
			continue
		}

		if t.Flags.Has(TokenFlagSentEndWeak) && weakTerminators[t.Text] {
			// Decide whether the ellipsis ends the sentence by looking past
			// any weak or punctuation tokens.
			j := k + 1
			for j < n && (tokens[j].Flags.Has(TokenFlagSentEndWeak) || tokens[j].Flags.Has(TokenFlagPunct)) {
				j++
			}
			if j >= n || tokens[j].Flags.Has(TokenFlagCapitalized) {
				sentences = append(sentences, Sentence{Start: s, End: k + 1})
				s = k + 1
				k = s
				continue
			}
		}

		k++
	}

	if s < n {
		sentences = append(sentences, Sentence{Start: s, End: n})
	}
	return sentences
}

// Segment tokenizes text and returns one rune span per sentence, running
// from the start of the sentence's first token to the end of its last.
func Segment(text string) []Span {
	tokens := Tokenize(text)
	var spans []Span
	for _, sent := range SegmentTokens(tokens) {
		if sent.Start >= sent.End {
			continue
		}
		spans = append(spans, Span{
			Start: tokens[sent.Start].Start,
			End:   tokens[sent.End-1].End,
		})
	}
	return spans
}
