package morph

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lingraph/lingraph/pkg/text"
)

// =============================================================================
// POS Codes
// =============================================================================

// POS is the coarse part-of-speech code assigned by [Analyze]. The numeric
// values land in node subtypes on annotated graphs and must never be
// reordered.
type POS uint8

const (
	POSX POS = iota
	POSNoun
	POSVerb
	POSAdj
	POSAdv
	POSPron
	POSDet
	POSAdp
	POSCConj
	POSSConj
	POSPunct
	POSNum
	POSPropn
	POSAux
)

var posNames = map[POS]string{
	POSX:     "X",
	POSNoun:  "NOUN",
	POSVerb:  "VERB",
	POSAdj:   "ADJ",
	POSAdv:   "ADV",
	POSPron:  "PRON",
	POSDet:   "DET",
	POSAdp:   "ADP",
	POSCConj: "CCONJ",
	POSSConj: "SCONJ",
	POSPunct: "PUNCT",
	POSNum:   "NUM",
	POSPropn: "PROPN",
	POSAux:   "AUX",
}

// String returns the tag name of the POS code, or "pos(N)" for values
// outside the closed set.
func (p POS) String() string {
	if s, ok := posNames[p]; ok {
		return s
	}
	return fmt.Sprintf("pos(%d)", uint8(p))
}

// IsValid reports whether the value is one of the defined POS codes.
func (p POS) IsValid() bool { return p <= POSAux }

// =============================================================================
// Packed Features
// =============================================================================

// Feature values packed next to the POS by [PackBits].
const (
	TenseNone uint8 = iota
	TensePresent
	TensePast
)

const (
	NumberNone uint8 = iota
	NumberSingular
	NumberPlural
)

const (
	PersonNone uint8 = iota
	PersonFirst
	PersonSecond
	PersonThird
)

// PackBits packs a POS code with tense, number, and person into the 16-bit
// feature field carried on [Morph]. Layout: bits 0-3 POS, bits 4-5 tense,
// bits 6-7 number, bits 8-9 person; inputs are masked to their width.
func PackBits(pos POS, tense, number, person uint8) uint16 {
	return uint16(pos&0xF) | uint16(tense&0x3)<<4 | uint16(number&0x3)<<6 | uint16(person&0x3)<<8
}

// =============================================================================
// Word Tables
// =============================================================================

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"if": true, "because": true, "that": true, "which": true, "who": true,
	"whom": true, "whose": true,
	"to": true, "of": true, "in": true, "on": true, "at": true, "by": true,
	"for": true, "with": true, "from": true, "as": true, "than": true,
	"then": true, "so": true, "yet": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "do": true, "does": true, "did": true,
	"have": true, "has": true, "had": true,
	"not": true, "no": true, "yes": true, "it": true, "i": true, "you": true,
	"he": true, "she": true, "we": true, "they": true, "me": true,
	"him": true, "her": true, "us": true, "them": true,
	"this": true, "these": true, "those": true,
}

var pronouns = map[string]bool{
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "me": true, "him": true, "her": true, "us": true,
	"them": true, "my": true, "your": true, "his": true, "our": true,
	"their": true,
}

var determiners = map[string]bool{
	"the": true, "a": true, "an": true, "this": true, "that": true,
	"these": true, "those": true,
}

var adpositions = map[string]bool{
	"of": true, "to": true, "in": true, "on": true, "at": true, "by": true,
	"for": true, "with": true, "from": true, "as": true, "into": true,
	"onto": true, "over": true, "under": true, "between": true,
	"through": true,
}

var coordinators = map[string]bool{
	"and": true, "or": true, "but": true, "nor": true, "yet": true, "so": true,
}

var subordinators = map[string]bool{
	"because": true, "if": true, "that": true, "although": true,
	"though": true, "when": true, "while": true, "since": true,
	"unless": true,
}

// auxEntry is one irregular auxiliary or modal form.
type auxEntry struct {
	lemma  string
	tense  uint8
	number uint8
	person uint8
}

var auxiliaries = map[string]auxEntry{
	// be
	"am":    {"be", TensePresent, NumberSingular, PersonFirst},
	"are":   {"be", TensePresent, NumberNone, PersonNone},
	"is":    {"be", TensePresent, NumberSingular, PersonThird},
	"was":   {"be", TensePast, NumberSingular, PersonFirst},
	"were":  {"be", TensePast, NumberNone, PersonNone},
	"be":    {"be", TenseNone, NumberNone, PersonNone},
	"been":  {"be", TenseNone, NumberNone, PersonNone},
	"being": {"be", TenseNone, NumberNone, PersonNone},
	// have
	"have": {"have", TensePresent, NumberNone, PersonNone},
	"has":  {"have", TensePresent, NumberSingular, PersonThird},
	"had":  {"have", TensePast, NumberNone, PersonNone},
	// do
	"do":   {"do", TensePresent, NumberNone, PersonNone},
	"does": {"do", TensePresent, NumberSingular, PersonThird},
	"did":  {"do", TensePast, NumberNone, PersonNone},
	// modals, tenseless
	"can": {"can", 0, 0, 0}, "could": {"could", 0, 0, 0},
	"may": {"may", 0, 0, 0}, "might": {"might", 0, 0, 0},
	"must": {"must", 0, 0, 0}, "should": {"should", 0, 0, 0},
	"would": {"would", 0, 0, 0}, "will": {"will", 0, 0, 0},
	"shall": {"shall", 0, 0, 0},
}

// =============================================================================
// Analysis
// =============================================================================

// Morph is the analysis of one token.
type Morph struct {
	Lemma   string
	LemmaID uint64
	POS     POS
	Bits    uint16
	Stop    bool
}

// Analyze produces one Morph per token, interning every lemma into v.
// Rules apply in a fixed order and the first match wins, so analysis is
// deterministic and the vocabulary fills in token order.
func Analyze(tokens []text.Token, v *Vocab) []Morph {
	morphs := make([]Morph, 0, len(tokens))
	for _, t := range tokens {
		morphs = append(morphs, analyzeToken(t, v))
	}
	return morphs
}

func analyzeToken(t text.Token, v *Vocab) Morph {
	norm := stripPossessive(normApostrophes(t.Text))
	lower := strings.ToLower(norm)

	switch {
	case t.Flags.Has(text.TokenFlagPunct):
		return intern(v, norm, POSPunct, PackBits(POSPunct, 0, 0, 0), false)
	case t.Flags.Has(text.TokenFlagNumeric):
		return intern(v, lower, POSNum, PackBits(POSNum, 0, 0, 0), false)
	case pronouns[lower]:
		return intern(v, lower, POSPron, PackBits(POSPron, 0, 0, 0), true)
	case determiners[lower]:
		return intern(v, lower, POSDet, PackBits(POSDet, 0, 0, 0), true)
	case adpositions[lower]:
		return intern(v, lower, POSAdp, PackBits(POSAdp, 0, 0, 0), true)
	case coordinators[lower]:
		return intern(v, lower, POSCConj, PackBits(POSCConj, 0, 0, 0), true)
	case subordinators[lower]:
		return intern(v, lower, POSSConj, PackBits(POSSConj, 0, 0, 0), true)
	}

	if aux, ok := auxiliaries[lower]; ok {
		bits := PackBits(POSAux, aux.tense, aux.number, aux.person)
		return intern(v, aux.lemma, POSAux, bits, stopwords[lower])
	}

	// Crude proper-noun shape: initial capital then letters, checked on the
	// raw surface so possessives like "John’s" fall through.
	if initialCapWord(t.Text) {
		return intern(v, t.Text, POSPropn, PackBits(POSPropn, 0, 0, 0), false)
	}

	return intern(v, lemmaGuess(lower), POSNoun, PackBits(POSNoun, 0, 0, 0), stopwords[lower])
}

func intern(v *Vocab, lemma string, pos POS, bits uint16, stop bool) Morph {
	return Morph{Lemma: lemma, LemmaID: v.ID(lemma), POS: pos, Bits: bits, Stop: stop}
}

// =============================================================================
// Normalization Helpers
// =============================================================================

// normApostrophes maps curly apostrophes to ASCII; all other runes pass
// through untouched.
func normApostrophes(s string) string {
	s = strings.ReplaceAll(s, "’", "'")
	return strings.ReplaceAll(s, "‘", "'")
}

// stripPossessive removes a trailing "'s" or bare trailing apostrophe.
// The input must already have apostrophes normalized.
func stripPossessive(s string) string {
	if strings.HasSuffix(s, "'s") {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "'") {
		return s[:len(s)-1]
	}
	return s
}

// lemmaGuess strips one naive verbal or plural suffix. Length guards are
// in runes and keep short words and -ss nouns intact.
func lemmaGuess(lower string) string {
	n := utf8.RuneCountInString(lower)
	switch {
	case strings.HasSuffix(lower, "ing") && n > 4:
		return lower[:len(lower)-3]
	case strings.HasSuffix(lower, "ed") && n > 3:
		return lower[:len(lower)-2]
	case strings.HasSuffix(lower, "s") && n > 3 && !strings.HasSuffix(lower, "ss"):
		return lower[:len(lower)-1]
	}
	return lower
}

// initialCapWord reports the proper-noun surface shape: an ASCII capital
// followed by one or more ASCII letters and nothing else.
func initialCapWord(s string) bool {
	if len(s) < 2 || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
