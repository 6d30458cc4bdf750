package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/disclose/internal/disclosure"
	"github.com/marcus/disclose/internal/dom"
	"github.com/marcus/disclose/internal/logging"
	"github.com/marcus/disclose/internal/output"
	"github.com/marcus/disclose/internal/suggest"
	"github.com/marcus/disclose/pkg/monitor"
	"github.com/marcus/disclose/pkg/monitor/tooltip"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the demo document and its disclosure triggers",
	Long: `Prints the demo document in composed order, shadow roots included, marking
every registered trigger with the state of its overlay. --focus moves focus to
an element first so the resulting state shows up in the tree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		focusID, _ := cmd.Flags().GetString("focus")
		verbose, _ := cmd.Flags().GetBool("verbose")

		logger := logging.Discard()
		if verbose {
			logger = logging.New(os.Stderr, slog.LevelDebug)
		}

		nodes, err := inspectScene(focusID, logger)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(nodes)
		}

		depth, _ := cmd.Flags().GetInt("depth")
		tags, _ := cmd.Flags().GetBool("tags")
		lines := output.RenderTreeLines(nodes, output.TreeRenderOptions{
			MaxDepth:  depth,
			ShowMarks: true,
			ShowTag:   tags,
		})
		for _, line := range lines {
			fmt.Fprintln(output.Stdout, line)
		}
		fmt.Fprintf(output.Stdout, "\n%d triggers\n", output.CountTriggers(nodes))
		return nil
	},
}

// inspectScene builds the demo scene, registers it with a fresh manager and
// optionally focuses focusID before converting the document to tree nodes.
func inspectScene(focusID string, logger *slog.Logger) ([]output.TreeNode, error) {
	scene := monitor.BuildScene(tooltip.WithMarkdownStyle(""))
	m := disclosure.New(scene.Doc, disclosure.WithLogger(logger))
	scene.Register(m)
	defer scene.Unregister(m)

	if focusID != "" {
		el := scene.Doc.ElementByID(focusID)
		if el == nil {
			var ids []string
			scene.Doc.Walk(func(el *dom.Element) bool {
				if el.ID() != "" {
					ids = append(ids, el.ID())
				}
				return true
			})
			return nil, fmt.Errorf("no element %q%s", focusID, suggest.Hint(suggest.IDs(focusID, ids)))
		}
		if !el.Focusable() {
			return nil, fmt.Errorf("element %q cannot take focus", focusID)
		}
		scene.Doc.Focus(el)
	}

	mark := func(el *dom.Element) (bool, string) {
		_, o, ok := m.Resolve([]dom.Node{el})
		if !ok {
			return false, ""
		}
		if o == m.Active() {
			return true, m.State().String()
		}
		return true, disclosure.StateClosed.String()
	}
	return output.FromDocument(scene.Doc, mark), nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().String("focus", "", "Focus this element id before printing")
	inspectCmd.Flags().Int("depth", 0, "Maximum depth to print (0 = unlimited)")
	inspectCmd.Flags().Bool("tags", false, "Show element tags")
	inspectCmd.Flags().Bool("json", false, "JSON output")
	inspectCmd.Flags().BoolP("verbose", "v", false, "Log disclosure transitions to stderr")
}
