package text

import (
	"strings"
	"unicode"
)

// =============================================================================
// Character Classes and Terminator Sets
// =============================================================================

// punctRunes are the runes the PUNCT rule accepts, one rune per token.
const punctRunes = ".,?!;:()[]{}\"“”‘’—–-"

var (
	// strongTerminators always end a sentence.
	strongTerminators = map[string]bool{".": true, "?": true, "!": true}

	// weakTerminators (ellipses) end a sentence only in trailing position
	// or before a capitalized token.
	weakTerminators = map[string]bool{"…": true, "...": true}

	// closers are the quotes and brackets a strong terminator pushes its
	// boundary over.
	closers = map[string]bool{
		`"`: true, "”": true, "’": true, "'": true,
		")": true, "]": true, "}": true, "»": true,
	}
)

func isPunctRune(r rune) bool   { return strings.ContainsRune(punctRunes, r) }
func isASCIILetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isASCIIDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isWordRune(r rune) bool    { return isASCIILetter(r) || isASCIIDigit(r) }
func isJoinerRune(r rune) bool  { return r == '’' || r == '\'' || r == '-' }
func isHandleRune(r rune) bool  { return isWordRune(r) || r == '_' }

func isEmailLocalRune(r rune) bool {
	return isWordRune(r) || r == '.' || r == '_' || r == '%' || r == '+' || r == '-'
}

func isEmailDomainRune(r rune) bool { return isWordRune(r) || r == '.' || r == '-' }

// =============================================================================
// Tokenizer
// =============================================================================

// Tokenize splits text into tokens. At each rune the scanner tries the rules
// below in order; the first rule that matches wins and consumes its maximal
// extent. Runes no rule matches are dropped, except that a residue after the
// final match survives as one trailing fallback token with word-style flags.
//
//	URL       https://…, http://…, or www.… up to the next whitespace
//	EMAIL     local@domain with a letters-only suffix of length >= 2
//	HANDLE    @mention or #hashtag
//	ELLIPSIS  "…" or exactly "..."
//	WORD      alphanumeric run, apostrophe/hyphen joined runs allowed
//	PUNCT     one punctuation rune
//	SPACE     whitespace, consumed but never emitted
//
// A post-pass assigns sentence-end flags: a strong terminator ".", "?", "!"
// gets [TokenFlagSentEndStrong] and pushes [TokenFlagSentEndWeak] onto the
// closing quotes and brackets that immediately follow it; an ellipsis gets
// the weak flag directly.
//
// Tokenize never normalizes: every token's Text is the exact input slice at
// its rune span.
func Tokenize(text string) []Token {
	runes := []rune(text)
	var tokens []Token

	pos := 0
	tail := 0 // end of the most recent match, whitespace included
	for pos < len(runes) {
		kind, n := matchAt(runes, pos)
		if kind == matchNone {
			pos++
			continue
		}
		if kind != matchSpace {
			piece := runes[pos : pos+n]
			var flags TokenFlags
			switch kind {
			case matchPunct, matchEllipsis:
				flags = TokenFlagPunct
			case matchWord:
				flags = wordFlags(piece)
			case matchURL, matchEmail, matchHandle:
				flags = digitFlag(piece)
			}
			tokens = append(tokens, Token{
				Text:  string(piece),
				Start: pos,
				End:   pos + n,
				Flags: flags,
			})
		}
		pos += n
		tail = pos
	}

	if tail < len(runes) {
		piece := runes[tail:]
		tokens = append(tokens, Token{
			Text:  string(piece),
			Start: tail,
			End:   len(runes),
			Flags: wordFlags(piece),
		})
	}

	markSentenceEnds(tokens)
	return tokens
}

// markSentenceEnds flags the sentence terminators in one forward pass. Only
// punctuation tokens terminate; the trailing fallback never does.
func markSentenceEnds(tokens []Token) {
	for k := range tokens {
		t := &tokens[k]
		if !t.Flags.Has(TokenFlagPunct) {
			continue
		}
		switch {
		case strongTerminators[t.Text]:
			t.Flags |= TokenFlagSentEndStrong
			for j := k + 1; j < len(tokens) && closers[tokens[j].Text]; j++ {
				tokens[j].Flags |= TokenFlagSentEndWeak
			}
		case weakTerminators[t.Text]:
			t.Flags |= TokenFlagSentEndWeak
		}
	}
}

// wordFlags computes the flags word tokens and the trailing fallback carry:
// numeric when any rune is a digit, capitalized when the token contains a
// letter and its first rune is upper case.
func wordFlags(piece []rune) TokenFlags {
	var flags TokenFlags
	hasLetter := false
	for _, r := range piece {
		if unicode.IsDigit(r) {
			flags |= TokenFlagNumeric
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	if hasLetter && unicode.IsUpper(piece[0]) {
		flags |= TokenFlagCapitalized
	}
	return flags
}

// digitFlag is the reduced flag set for URL, email, and handle tokens.
func digitFlag(piece []rune) TokenFlags {
	for _, r := range piece {
		if unicode.IsDigit(r) {
			return TokenFlagNumeric
		}
	}
	return 0
}

// =============================================================================
// Scanner Rules
// =============================================================================

type matchKind int

const (
	matchNone matchKind = iota
	matchURL
	matchEmail
	matchHandle
	matchEllipsis
	matchWord
	matchPunct
	matchSpace
)

// matchAt applies the scanner rules at pos in priority order and returns the
// winning rule with its length in runes. matchNone means no rule applies at
// this position.
func matchAt(runes []rune, pos int) (matchKind, int) {
	if n := matchURLAt(runes, pos); n > 0 {
		return matchURL, n
	}
	if n := matchEmailAt(runes, pos); n > 0 {
		return matchEmail, n
	}
	if n := matchHandleAt(runes, pos); n > 0 {
		return matchHandle, n
	}
	if n := matchEllipsisAt(runes, pos); n > 0 {
		return matchEllipsis, n
	}
	if n := matchWordAt(runes, pos); n > 0 {
		return matchWord, n
	}
	if isPunctRune(runes[pos]) {
		return matchPunct, 1
	}
	if n := matchSpaceAt(runes, pos); n > 0 {
		return matchSpace, n
	}
	return matchNone, 0
}

// matchURLAt accepts "https://", "http://", or "www." followed by at least
// one non-space rune, and runs to the next whitespace.
func matchURLAt(runes []rune, pos int) int {
	var head int
	switch {
	case hasASCIIPrefix(runes[pos:], "https://"):
		head = len("https://")
	case hasASCIIPrefix(runes[pos:], "http://"):
		head = len("http://")
	case hasASCIIPrefix(runes[pos:], "www."):
		head = len("www.")
	default:
		return 0
	}
	end := pos + head
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}
	if end == pos+head {
		return 0 // a bare scheme is not a URL
	}
	return end - pos
}

// matchEmailAt accepts local@domain.tld: the local part over
// [A-Za-z0-9._%+-], the domain over [A-Za-z0-9.-]. The match ends at the
// ASCII-letter run (two letters or more) after the rightmost dot that has
// such a run; anything past it is left for the next rule.
func matchEmailAt(runes []rune, pos int) int {
	i := pos
	for i < len(runes) && isEmailLocalRune(runes[i]) {
		i++
	}
	if i == pos || i == len(runes) || runes[i] != '@' {
		return 0
	}
	domainStart := i + 1
	j := domainStart
	for j < len(runes) && isEmailDomainRune(runes[j]) {
		j++
	}
	// The suffix dot needs at least one domain rune before it and two
	// letters after it.
	for dot := j - 3; dot > domainStart; dot-- {
		if runes[dot] != '.' || !isASCIILetter(runes[dot+1]) || !isASCIILetter(runes[dot+2]) {
			continue
		}
		end := dot + 1
		for end < j && isASCIILetter(runes[end]) {
			end++
		}
		return end - pos
	}
	return 0
}

// matchHandleAt accepts "@" or "#" followed by at least one of [A-Za-z0-9_].
func matchHandleAt(runes []rune, pos int) int {
	if runes[pos] != '@' && runes[pos] != '#' {
		return 0
	}
	i := pos + 1
	for i < len(runes) && isHandleRune(runes[i]) {
		i++
	}
	if i == pos+1 {
		return 0
	}
	return i - pos
}

// matchEllipsisAt accepts "…" or exactly three dots.
func matchEllipsisAt(runes []rune, pos int) int {
	if runes[pos] == '…' {
		return 1
	}
	if pos+3 <= len(runes) && runes[pos] == '.' && runes[pos+1] == '.' && runes[pos+2] == '.' {
		return 3
	}
	return 0
}

// matchWordAt accepts an alphanumeric run optionally continued by
// apostrophe- or hyphen-joined runs: "don't", "O’Neill", "state-of-the-art",
// "10-mm".
func matchWordAt(runes []rune, pos int) int {
	i := pos
	for i < len(runes) && isWordRune(runes[i]) {
		i++
	}
	if i == pos {
		return 0
	}
	for i < len(runes) && isJoinerRune(runes[i]) && i+1 < len(runes) && isWordRune(runes[i+1]) {
		i++
		for i < len(runes) && isWordRune(runes[i]) {
			i++
		}
	}
	return i - pos
}

func matchSpaceAt(runes []rune, pos int) int {
	i := pos
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return i - pos
}

func hasASCIIPrefix(runes []rune, prefix string) bool {
	if len(runes) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if runes[i] != rune(prefix[i]) {
			return false
		}
	}
	return true
}
