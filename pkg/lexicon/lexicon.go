// Package lexicon defines the dictionary record format and an in-memory
// surface-form index over it.
//
// Entries are plain JSON documents produced by external dictionary
// tooling: one headword per entry, one variant per part-of-speech
// section, definitions nested up to one level of subsenses. The package
// loads them from single files (JSON array or newline-delimited
// objects) or from a directory tree, and answers "which entries match
// this surface form" via [Index].
//
// # Usage
//
//	entries, err := lexicon.LoadDir("dictionary")
//	if err != nil { ... }
//	ix := lexicon.NewIndex()
//	for _, e := range entries {
//		ix.Add(e)
//	}
//	for _, e := range ix.Lookup("ran") {
//		fmt.Println(e.Lemma, e.POS)
//	}
package lexicon

// Entry is one dictionary headword for one part of speech.
type Entry struct {
	Word     string    `json:"word"`
	Lemma    string    `json:"lemma"`
	POS      string    `json:"pos"`
	Variants []Variant `json:"variants,omitempty"`
}

// Variant is one reading of a headword: a single etymology section with
// its inflection table and definitions.
type Variant struct {
	Etymology     string              `json:"etymology,omitempty"`
	POSIndex      int                 `json:"pos_index,omitempty"`
	Pronunciation string              `json:"pronunciation,omitempty"`
	Forms         map[string][]string `json:"forms,omitempty"`
	Definitions   []Definition        `json:"definitions,omitempty"`
}

// Definition is one sense of a variant. Subdefinitions hold nested
// subsenses; in practice nesting stops at one level.
type Definition struct {
	Text           string       `json:"text"`
	Labels         []string     `json:"labels,omitempty"`
	Examples       []string     `json:"examples,omitempty"`
	Subdefinitions []Definition `json:"subdefinitions,omitempty"`
}
