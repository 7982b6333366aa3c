package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lingraph/lingraph/pkg/graph"
	"github.com/lingraph/lingraph/pkg/morph"
	"github.com/lingraph/lingraph/pkg/pgraph"
)

// inspectPreview caps how many nodes and edges the plain summary lists.
const inspectPreview = 20

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	output      string // output file path (stdout if empty)
	asJSON      bool   // emit the full graph as JSON
	interactive bool   // browse nodes in an interactive table
}

// inspectCommand creates the inspect command for examining binary graph
// files.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a binary graph file",
		Long: `Decode a binary graph file and print its header, node, and edge
summary. Use --json for the full graph and --interactive to browse
nodes in a scrolling table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := pgraph.ReadFile(args[0])
			if err != nil {
				return err
			}
			c.Logger.Debug("decoded graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())

			if opts.interactive {
				return runNodeBrowser(g)
			}

			out, err := openOutput(opts.output)
			if err != nil {
				return err
			}
			defer out.Close()

			if opts.asJSON {
				return graph.WriteJSON(g, out)
			}
			_, err = io.WriteString(out, inspectSummary(g))
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit the full graph as JSON")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse nodes in an interactive table")

	return cmd
}

// inspectSummary formats the graph header followed by a preview of its
// nodes and edges, truncated at inspectPreview entries each.
func inspectSummary(g *graph.Graph) string {
	var b strings.Builder

	fmt.Fprintf(&b, "graph    %d (%s)\n", g.ID, g.Type)
	fmt.Fprintf(&b, "source   %d\n", g.SourceID)
	fmt.Fprintf(&b, "version  %d\n", g.Version)
	fmt.Fprintf(&b, "schema   %s\n", g.Schema)
	fmt.Fprintf(&b, "nodes    %d\n", g.NodeCount())
	fmt.Fprintf(&b, "edges    %d\n", g.EdgeCount())
	if len(g.Thumbnail) > 0 {
		fmt.Fprintf(&b, "thumb    %d bytes\n", len(g.Thumbnail))
	}

	b.WriteString("\n")
	for i, n := range g.Nodes {
		if i == inspectPreview {
			fmt.Fprintf(&b, "  … and %d more nodes\n", g.NodeCount()-inspectPreview)
			break
		}
		fmt.Fprintf(&b, "  n%-4d %-8s %-6s [%d,%d)", n.ID, n.Type, nodePOS(n), n.Span.Start, n.Span.End)
		if flags := strings.Join(n.Flags.Names(), ","); flags != "" {
			fmt.Fprintf(&b, " %s", flags)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for i, e := range g.Edges {
		if i == inspectPreview {
			fmt.Fprintf(&b, "  … and %d more edges\n", g.EdgeCount()-inspectPreview)
			break
		}
		fmt.Fprintf(&b, "  n%d -> n%d %s\n", e.Src, e.Dst, e.Type)
	}

	return b.String()
}

// nodePOS returns the part-of-speech tag of an annotated token node, or
// "-" when the node is not a token or was never annotated.
func nodePOS(n graph.Node) string {
	if n.Type != graph.NodeTypeToken || n.SubType == 0 {
		return "-"
	}
	return morph.POS(n.SubType).String()
}
