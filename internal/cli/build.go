package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/lingraph/lingraph/pkg/errors"
	"github.com/lingraph/lingraph/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output     string // output file path (derived from input if empty)
	graphID    uint64 // graph id stamped into the blob header
	sourceID   uint64 // source document id stamped into the blob header
	version    uint64 // graph version stamped into the blob header
	thumbnail  string // file holding a raw 64- or 128-byte feature vector
	noAnnotate bool   // skip the morphology stage
	refresh    bool   // bypass the blob cache for this run
	noCache    bool   // disable the blob cache entirely
}

// buildCommand creates the build command, which runs the full pipeline
// and writes the encoded graph to disk.
//
// Default options:
//   - annotate: on (part of speech, lemma labels, stopword flags)
//   - cache: file cache under the XDG cache directory
//   - output: input file name with a .pgraph extension, or graph.pgraph
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <text>",
		Short: "Run the full pipeline and write a binary graph file",
		Long: `Run the full pipeline on text: tokenize, segment, analyze morphology,
build the token graph, and encode it into a binary graph file.

The argument is taken as literal text unless it names an existing file,
which is read instead; "-" reads standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (derived from input if empty)")
	cmd.Flags().Uint64Var(&opts.graphID, "graph-id", 0, "graph id stamped into the header")
	cmd.Flags().Uint64Var(&opts.sourceID, "source-id", 0, "source document id stamped into the header")
	cmd.Flags().Uint64Var(&opts.version, "graph-version", 0, "graph version stamped into the header (default 1)")
	cmd.Flags().StringVar(&opts.thumbnail, "thumbnail", "", "file holding a raw 64- or 128-byte graph feature vector")
	cmd.Flags().BoolVar(&opts.noAnnotate, "no-annotate", false, "skip morphological annotation")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the blob cache for this run")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the blob cache")

	return cmd
}

// runBuild executes the pipeline on the resolved input and writes the
// encoded blob.
func (c *CLI) runBuild(ctx context.Context, arg string, opts *buildOpts) error {
	input, err := readInput(arg)
	if err != nil {
		return err
	}
	if err := apperrors.ValidateText(input); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		GraphID:      opts.graphID,
		SourceID:     opts.sourceID,
		Version:      opts.version,
		SkipAnnotate: opts.noAnnotate,
		Refresh:      opts.refresh,
	}
	if opts.thumbnail != "" {
		thumb, err := os.ReadFile(opts.thumbnail)
		if err != nil {
			return fmt.Errorf("read thumbnail: %w", err)
		}
		popts.Thumbnail = thumb
	}

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, input, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built graph with %d nodes and %d edges",
		result.Stats.NodeCount, result.Stats.EdgeCount))

	outputPath := opts.output
	if outputPath == "" {
		outputPath = defaultOutputPath(arg)
	}
	if err := os.WriteFile(outputPath, result.Blob, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	printSuccess("Built graph (%d bytes)", result.Stats.BlobSize)
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.BlobHit)
	printNextStep("Inspect it", fmt.Sprintf("%s inspect %s", appName, outputPath))
	return nil
}

// defaultOutputPath derives the graph file name from the input
// argument: file inputs swap their extension for .pgraph, literal text
// falls back to graph.pgraph in the working directory.
func defaultOutputPath(arg string) string {
	if looksLikeFile(arg) {
		return strings.TrimSuffix(arg, filepath.Ext(arg)) + graphFileExt
	}
	return "graph" + graphFileExt
}
