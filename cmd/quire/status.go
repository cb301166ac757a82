package main

import (
	"context"
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
	"github.com/aretw0/quire/pkg/notebook"
)

var (
	statusJSON    bool
	statusMermaid bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the notebook and store state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNotebook(cmd, func(ctx context.Context, nb *quire.Notebook, _ quire.Store) error {
			state, ok := nb.State().(notebook.ServiceState)
			if !ok {
				return fmt.Errorf("unexpected notebook state %T", nb.State())
			}

			out := cmd.OutOrStdout()
			switch {
			case statusJSON:
				return writeJSON(out, state)
			case statusMermaid:
				config := introspection.DefaultDiagramConfig()
				config.SecondaryID = "notebook"
				config.SecondaryLabel = "Notebook Topology"
				fmt.Fprintln(out, introspection.TreeDiagram(buildStateTree(state), config))
			default:
				fmt.Fprintf(out, "Notebook: %s\n", notebookDir)
				fmt.Fprintf(out, "Store:    %s (%s)\n", state.StoreType, state.Codec)
				fmt.Fprintf(out, "Notes:    %d (%s)\n", state.Notes, state.NotesKey)
				fmt.Fprintf(out, "Tags:     %d (%s)\n", state.Tags, state.TagsKey)
				if state.LoadErrors > 0 {
					warn(cmd, "%d collection(s) could not be loaded", state.LoadErrors)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	statusCmd.Flags().BoolVar(&statusMermaid, "mermaid", false, "Output a Mermaid diagram")
}

type stateNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []stateNode
}

// buildStateTree maps the notebook state onto the node shape TreeDiagram reads.
// Status values must be classes of introspection.DefaultStyles().
func buildStateTree(state notebook.ServiceState) stateNode {
	recordStatus := func(n int) string {
		if n == 0 {
			return "suspended"
		}
		return "running"
	}

	storeStatus := "running"
	if state.FailedSaves > 0 || state.LoadErrors > 0 {
		storeStatus = "failed"
	}

	return stateNode{
		Name:   "Notebook",
		Status: "running",
		Metadata: map[string]string{
			"type":        "container",
			"derivations": fmt.Sprintf("%d", state.Derivations),
		},
		Children: []stateNode{
			{
				Name:   "Store",
				Status: storeStatus,
				Metadata: map[string]string{
					"type":   state.StoreType,
					"codec":  state.Codec,
					"saves":  fmt.Sprintf("%d", state.Saves),
					"failed": fmt.Sprintf("%d", state.FailedSaves),
				},
				Children: []stateNode{
					{
						Name:     state.NotesKey,
						Status:   recordStatus(state.Notes),
						Metadata: map[string]string{"type": "record", "items": fmt.Sprintf("%d", state.Notes)},
					},
					{
						Name:     state.TagsKey,
						Status:   recordStatus(state.Tags),
						Metadata: map[string]string{"type": "record", "items": fmt.Sprintf("%d", state.Tags)},
					},
				},
			},
		},
	}
}
