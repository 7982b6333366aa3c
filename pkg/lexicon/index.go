package lexicon

import "strings"

// Index answers surface-form lookups over a set of entries. Matching is
// exact after Unicode case folding: "Ran" finds the entry whose past
// tense is "ran". Index is not safe for concurrent mutation; build it
// once, then share it for reads.
type Index struct {
	entries []Entry
	byForm  map[string][]int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{byForm: make(map[string][]int)}
}

// Add indexes one entry under its headword, lemma, and every inflected
// form in its variants.
func (ix *Index) Add(e Entry) {
	id := len(ix.entries)
	ix.entries = append(ix.entries, e)
	for _, form := range surfaceForms(e) {
		ix.byForm[form] = append(ix.byForm[form], id)
	}
}

// Len reports the number of entries added.
func (ix *Index) Len() int { return len(ix.entries) }

// Lookup returns the entries matching the given surface form, in the
// order they were added. The result is nil when nothing matches.
func (ix *Index) Lookup(form string) []Entry {
	ids := ix.byForm[fold(form)]
	if len(ids) == 0 {
		return nil
	}
	out := make([]Entry, len(ids))
	for i, id := range ids {
		out[i] = ix.entries[id]
	}
	return out
}

// Lemmas returns the distinct lemmas of the entries matching form, in
// first-seen order.
func (ix *Index) Lemmas(form string) []string {
	var lemmas []string
	seen := make(map[string]bool)
	for _, e := range ix.Lookup(form) {
		l := fold(e.Lemma)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		lemmas = append(lemmas, l)
	}
	return lemmas
}

// surfaceForms collects the folded, deduplicated set of forms an entry
// is reachable under.
func surfaceForms(e Entry) []string {
	seen := make(map[string]bool)
	var forms []string
	add := func(s string) {
		f := fold(s)
		if f == "" || seen[f] {
			return
		}
		seen[f] = true
		forms = append(forms, f)
	}

	add(e.Word)
	add(e.Lemma)
	for _, v := range e.Variants {
		for _, alts := range v.Forms {
			for _, alt := range alts {
				add(alt)
			}
		}
	}
	return forms
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
