package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/lingraph/lingraph/pkg/errors"
	"github.com/lingraph/lingraph/pkg/morph"
	"github.com/lingraph/lingraph/pkg/text"
)

// =============================================================================
// Stage Commands - tokenize / segment / analyze
// =============================================================================

// stageOpts holds the flags shared by the single-stage commands.
type stageOpts struct {
	output string // output file path (stdout if empty)
	asJSON bool   // emit JSON instead of the plain listing
}

// addStageFlags registers the shared stage flags on cmd.
func addStageFlags(cmd *cobra.Command, opts *stageOpts) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit JSON instead of the plain listing")
}

// tokenizeCommand creates the tokenize command.
func (c *CLI) tokenizeCommand() *cobra.Command {
	var opts stageOpts

	cmd := &cobra.Command{
		Use:   "tokenize <text>",
		Short: "Split text into flagged tokens",
		Long: `Split text into tokens with surface flags (capitalization, punctuation,
numerals, sentence terminators).

The argument is taken as literal text unless it names an existing file,
which is read instead; "-" reads standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args[0])
			if err != nil {
				return err
			}
			if err := apperrors.ValidateText(input); err != nil {
				return err
			}

			tokens := text.Tokenize(input)
			c.Logger.Info("tokenized input", "tokens", len(tokens))

			out, err := openOutput(opts.output)
			if err != nil {
				return err
			}
			defer out.Close()

			if opts.asJSON {
				return writeTokensJSON(out, tokens)
			}
			return writeTokens(out, tokens)
		},
	}

	addStageFlags(cmd, &opts)
	return cmd
}

// segmentCommand creates the segment command.
func (c *CLI) segmentCommand() *cobra.Command {
	var opts stageOpts

	cmd := &cobra.Command{
		Use:   "segment <text>",
		Short: "Split text into sentences",
		Long: `Split text into sentences, printing each sentence with its codepoint
span. Hard terminators always end a sentence; an ellipsis ends one only
when followed by a capitalized token.

The argument is taken as literal text unless it names an existing file,
which is read instead; "-" reads standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args[0])
			if err != nil {
				return err
			}
			if err := apperrors.ValidateText(input); err != nil {
				return err
			}

			tokens := text.Tokenize(input)
			sentences := text.SegmentTokens(tokens)
			c.Logger.Info("segmented input", "tokens", len(tokens), "sentences", len(sentences))

			out, err := openOutput(opts.output)
			if err != nil {
				return err
			}
			defer out.Close()

			if opts.asJSON {
				return writeSentencesJSON(out, input, tokens, sentences)
			}
			return writeSentences(out, input, tokens, sentences)
		},
	}

	addStageFlags(cmd, &opts)
	return cmd
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts stageOpts

	cmd := &cobra.Command{
		Use:   "analyze <text>",
		Short: "Tag part of speech and lemma per token",
		Long: `Analyze the morphology of each token: part of speech, lemma, packed
tense/number/person features, and stopword status.

The argument is taken as literal text unless it names an existing file,
which is read instead; "-" reads standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args[0])
			if err != nil {
				return err
			}
			if err := apperrors.ValidateText(input); err != nil {
				return err
			}

			tokens := text.Tokenize(input)
			vocab := morph.NewVocab()
			morphs := morph.Analyze(tokens, vocab)
			c.Logger.Info("analyzed input", "tokens", len(tokens), "lemmas", vocab.Len())

			out, err := openOutput(opts.output)
			if err != nil {
				return err
			}
			defer out.Close()

			if opts.asJSON {
				return writeMorphsJSON(out, tokens, morphs)
			}
			return writeMorphs(out, tokens, morphs)
		},
	}

	addStageFlags(cmd, &opts)
	return cmd
}

// =============================================================================
// Output Shapes
// =============================================================================

// tokenJSON is the serialized shape of one token. It matches the HTTP
// API's tokenize response, so scripts can consume either source.
type tokenJSON struct {
	Text  string   `json:"text"`
	Start int      `json:"start"`
	End   int      `json:"end"`
	Flags []string `json:"flags,omitempty"`
}

// sentenceJSON is the serialized shape of one sentence.
type sentenceJSON struct {
	Text       string `json:"text"`
	Span       [2]int `json:"span"`
	TokenRange [2]int `json:"token_range"`
}

// morphJSON is the serialized shape of one token analysis.
type morphJSON struct {
	Token string `json:"token"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
	Bits  uint16 `json:"bits"`
	Stop  bool   `json:"stop"`
}

// =============================================================================
// Writers
// =============================================================================

// writeTokens writes one line per token: index, codepoint span, surface
// text, and flag names.
func writeTokens(w io.Writer, tokens []text.Token) error {
	var b strings.Builder
	for i, t := range tokens {
		flags := strings.Join(t.Flags.Names(), ",")
		if flags == "" {
			fmt.Fprintf(&b, "%4d  [%4d,%4d)  %s\n", i, t.Start, t.End, t.Text)
		} else {
			fmt.Fprintf(&b, "%4d  [%4d,%4d)  %-16s  %s\n", i, t.Start, t.End, t.Text, flags)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeTokensJSON writes the token list as an indented JSON array.
func writeTokensJSON(w io.Writer, tokens []text.Token) error {
	out := make([]tokenJSON, len(tokens))
	for i, t := range tokens {
		out[i] = tokenJSON{Text: t.Text, Start: t.Start, End: t.End, Flags: t.Flags.Names()}
	}
	return encodeJSON(w, out)
}

// writeSentences writes one line per sentence: index, codepoint span,
// and the sentence text sliced from the input.
func writeSentences(w io.Writer, input string, tokens []text.Token, sentences []text.Sentence) error {
	runes := []rune(input)
	var b strings.Builder
	for i, sent := range sentences {
		start := tokens[sent.Start].Start
		end := tokens[sent.End-1].End
		fmt.Fprintf(&b, "%4d  [%4d,%4d)  %s\n", i, start, end, string(runes[start:end]))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeSentencesJSON writes the sentence list as an indented JSON array.
func writeSentencesJSON(w io.Writer, input string, tokens []text.Token, sentences []text.Sentence) error {
	runes := []rune(input)
	out := make([]sentenceJSON, len(sentences))
	for i, sent := range sentences {
		start := tokens[sent.Start].Start
		end := tokens[sent.End-1].End
		out[i] = sentenceJSON{
			Text:       string(runes[start:end]),
			Span:       [2]int{start, end},
			TokenRange: [2]int{sent.Start, sent.End},
		}
	}
	return encodeJSON(w, out)
}

// writeMorphs writes one line per token: index, surface text, part of
// speech, lemma, and a stop marker.
func writeMorphs(w io.Writer, tokens []text.Token, morphs []morph.Morph) error {
	var b strings.Builder
	for i, m := range morphs {
		if m.Stop {
			fmt.Fprintf(&b, "%4d  %-16s  %-6s  %-16s  stop\n", i, tokens[i].Text, m.POS, m.Lemma)
		} else {
			fmt.Fprintf(&b, "%4d  %-16s  %-6s  %s\n", i, tokens[i].Text, m.POS, m.Lemma)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeMorphsJSON writes the analysis list as an indented JSON array.
func writeMorphsJSON(w io.Writer, tokens []text.Token, morphs []morph.Morph) error {
	out := make([]morphJSON, len(morphs))
	for i, m := range morphs {
		out[i] = morphJSON{
			Token: tokens[i].Text,
			Lemma: m.Lemma,
			POS:   m.POS.String(),
			Bits:  m.Bits,
			Stop:  m.Stop,
		}
	}
	return encodeJSON(w, out)
}

// encodeJSON writes v to w as indented JSON.
func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// =============================================================================
// Input / Output Helpers
// =============================================================================

// readInput resolves the text argument of a command. "-" reads standard
// input and an argument naming an existing file is read from disk;
// anything else is the text itself.
func readInput(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	if looksLikeFile(arg) {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", arg, err)
		}
		return string(data), nil
	}
	return arg, nil
}

// looksLikeFile returns true if arg names an existing regular file.
func looksLikeFile(arg string) bool {
	info, err := os.Stat(arg)
	return err == nil && info.Mode().IsRegular()
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
