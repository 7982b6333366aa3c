package text

// TokenFlags is the bit set attached to every token by [Tokenize]. The low
// three bits describe the token itself; the sentence-end bits are assigned
// by the terminator post-pass and drive [SegmentTokens].
type TokenFlags uint8

const (
	// TokenFlagCapitalized marks a token that contains a letter and whose
	// first rune is upper case.
	TokenFlagCapitalized TokenFlags = 1 << iota
	// TokenFlagPunct marks tokens produced by the punctuation or ellipsis
	// rules.
	TokenFlagPunct
	// TokenFlagNumeric marks a token containing at least one digit.
	TokenFlagNumeric
	// TokenFlagSentEndStrong marks a hard sentence terminator: ".", "?", "!".
	TokenFlagSentEndStrong
	// TokenFlagSentEndWeak marks an ellipsis, or a closing quote/bracket
	// trailing a hard terminator.
	TokenFlagSentEndWeak
)

// Has reports whether all bits in mask are set.
func (f TokenFlags) Has(mask TokenFlags) bool { return f&mask == mask }

var tokenFlagNames = []struct {
	bit  TokenFlags
	name string
}{
	{TokenFlagCapitalized, "capitalized"},
	{TokenFlagPunct, "punct"},
	{TokenFlagNumeric, "numeric"},
	{TokenFlagSentEndStrong, "sent_end_strong"},
	{TokenFlagSentEndWeak, "sent_end_weak"},
}

// Names returns the names of all set flags in bit order. Returns nil when
// no flag is set.
func (f TokenFlags) Names() []string {
	var names []string
	for _, tf := range tokenFlagNames {
		if f.Has(tf.bit) {
			names = append(names, tf.name)
		}
	}
	return names
}

// Token is one lexical unit of the input. Text preserves the input exactly;
// Start and End are half-open rune offsets into the tokenized string.
type Token struct {
	Text  string
	Start int
	End   int
	Flags TokenFlags
}
