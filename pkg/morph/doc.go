// Package morph assigns coarse part-of-speech tags and lemmas to tokens.
//
// # Overview
//
// The analyzer is a deterministic rule cascade over small English word
// tables: punctuation and numbers first, then the closed classes
// (pronouns, determiners, adpositions, conjunctions), irregular
// auxiliaries and modals, a crude proper-noun shape check, and finally a
// naive suffix-stripping noun fallback. It never consults context and
// does not split contractions, so the same token always analyzes the same
// way. Unknown shapes land in the noun fallback rather than erroring.
//
// Lemmas are interned into a [Vocab], which hands out dense integer ids
// in first-seen order. Id 0 is reserved for "unknown", so identical input
// produces identical ids even across fresh vocabularies.
//
// # Basic Usage
//
//	vocab := morph.NewVocab()
//	tokens := text.Tokenize("Are you okay?")
//	morphs := morph.Analyze(tokens, vocab)
//
// [AnnotateGraph] writes the results onto a token graph: the POS code
// into each node's subtype, the lemma id into its label, and the
// stop-word flag for closed-class words.
package morph
