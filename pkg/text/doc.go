// Package text provides deterministic tokenization and sentence
// segmentation for the analysis pipeline.
//
// # Overview
//
// The tokenizer is rule-based and lossless: it never normalizes input, and
// every token records the half-open rune span it was cut from. Protected
// spans (URLs, emails, @mentions, #hashtags, contractions, hyphenated
// compounds, ellipses) stay single tokens; everything else splits into words
// and one-rune punctuation. The same input always produces the same tokens.
//
// # Basic Usage
//
// [Tokenize] produces the token stream, [SegmentTokens] groups it into
// sentences, and [Segment] combines both into rune spans over the original
// text:
//
//	tokens := text.Tokenize("Are you okay? Yes.")
//	for _, s := range text.SegmentTokens(tokens) {
//		fmt.Println(tokens[s.Start:s.End])
//	}
//
// # Sentence Boundaries
//
// Boundary detection is a rule of thumb, not a parser. A strong terminator
// (".", "?", "!") always ends a sentence and carries the boundary over any
// immediately trailing closing quotes or brackets. An ellipsis ends a
// sentence only when it is the last token or the next non-punctuation token
// is capitalized; the boundary then sits on the ellipsis itself, so opening
// quotes belong to the following sentence.
package text
