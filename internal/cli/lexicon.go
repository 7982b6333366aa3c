package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lingraph/lingraph/pkg/lexicon"
)

// maxDefinitions caps how many senses the plain lexicon output lists
// per variant.
const maxDefinitions = 5

// lexiconOpts holds the command-line flags for the lexicon command.
type lexiconOpts struct {
	dictDir string // dictionary directory to index
	asJSON  bool   // emit matching entries as JSON
}

// lexiconCommand creates the lexicon command for dictionary lookups.
// Matching is exact after case folding, over headwords, lemmas, and
// every inflected form: "ran" finds the entry for "run".
func (c *CLI) lexiconCommand() *cobra.Command {
	var opts lexiconOpts

	cmd := &cobra.Command{
		Use:   "lexicon <form>",
		Short: "Look up a surface form in a dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLexicon(args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.dictDir, "dict", "", "dictionary directory (required)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit matching entries as JSON")
	_ = cmd.MarkFlagRequired("dict")

	return cmd
}

// runLexicon indexes the dictionary directory and prints the entries
// matching form.
func (c *CLI) runLexicon(form string, opts *lexiconOpts) error {
	prog := newProgress(c.Logger)
	ix, err := loadLexicon(opts.dictDir)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Indexed %d dictionary entries", ix.Len()))

	matches := ix.Lookup(form)
	if len(matches) == 0 {
		printWarning("No entry for %q", form)
		return nil
	}

	if opts.asJSON {
		return encodeJSON(os.Stdout, matches)
	}

	if lemmas := ix.Lemmas(form); len(lemmas) > 0 {
		printDetail("lemmas: %s", strings.Join(lemmas, ", "))
	}
	for _, e := range matches {
		printEntry(e)
	}
	return nil
}

// loadLexicon loads every dictionary file under dir into a fresh index.
func loadLexicon(dir string) (*lexicon.Index, error) {
	entries, err := lexicon.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	ix := lexicon.NewIndex()
	for _, e := range entries {
		ix.Add(e)
	}
	return ix, nil
}

// printEntry renders one dictionary entry: headword, part of speech,
// pronunciation, and the first senses of each variant.
func printEntry(e lexicon.Entry) {
	fmt.Println(StyleTitle.Render(e.Word) + "  " + StyleDim.Render(e.POS))
	if e.Lemma != "" && e.Lemma != e.Word {
		printDetail("lemma: %s", e.Lemma)
	}
	for _, v := range e.Variants {
		if v.Pronunciation != "" {
			printDetail("%s", v.Pronunciation)
		}
		for i, d := range v.Definitions {
			if i == maxDefinitions {
				printDetail("… and %d more senses", len(v.Definitions)-maxDefinitions)
				break
			}
			fmt.Printf("  %d. %s\n", i+1, d.Text)
		}
	}
}
