package morph

// Vocab interns lemma strings into dense integer ids. Id 0 is reserved
// for "unknown"; assigned ids start at 1, in first-seen order, so a run
// over identical input reproduces the same ids. Not safe for concurrent
// use.
type Vocab struct {
	ids   map[string]uint64
	words []string
}

// NewVocab returns an empty vocabulary.
func NewVocab() *Vocab {
	return &Vocab{ids: make(map[string]uint64)}
}

// ID returns the id for s, assigning the next free id on first sight.
func (v *Vocab) ID(s string) uint64 {
	if id, ok := v.ids[s]; ok {
		return id
	}
	id := uint64(len(v.words)) + 1
	v.ids[s] = id
	v.words = append(v.words, s)
	return id
}

// Lookup returns the id for s without assigning one.
func (v *Vocab) Lookup(s string) (uint64, bool) {
	id, ok := v.ids[s]
	return id, ok
}

// String returns the interned string for id, or "" when id is zero or
// was never assigned.
func (v *Vocab) String(id uint64) string {
	if id == 0 || id > uint64(len(v.words)) {
		return ""
	}
	return v.words[id-1]
}

// Len returns the number of interned strings.
func (v *Vocab) Len() int { return len(v.words) }
