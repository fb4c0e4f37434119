package commands

import (
	"encoding/json"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/scrawl-labs/scrawl/pkg/diagram"
)

// kindInfo describes one registered diagram kind.
type kindInfo struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available diagram kinds",
		Long: `List every diagram kind this build can render.

Kinds load lazily: a kind stays "lazy" until the first document of that
kind is rendered, then shows as "loaded".`,
		Example: `  # List kinds as a table
  scrawl list

  # List kinds as JSON
  scrawl list --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	cmd.Flags().Bool("json", false, "Output as JSON")

	return cmd
}

func runList(cmd *cobra.Command) error {
	kinds := collectKinds()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(kinds)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Kind", "Status"})
	for _, k := range kinds {
		t.AppendRow(table.Row{k.Kind, k.Status})
	}
	t.Render()

	return nil
}

// collectKinds merges loadable and already-loaded kinds into one sorted
// list. Kinds registered eagerly (no loader) still show up via List.
func collectKinds() []kindInfo {
	seen := make(map[string]bool)
	var kinds []kindInfo

	for _, id := range diagram.Loaders() {
		seen[id] = true
		status := "lazy"
		if diagram.IsRegistered(id) {
			status = "loaded"
		}
		kinds = append(kinds, kindInfo{Kind: id, Status: status})
	}
	for _, id := range diagram.List() {
		if seen[id] {
			continue
		}
		kinds = append(kinds, kindInfo{Kind: id, Status: "loaded"})
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Kind < kinds[j].Kind })
	return kinds
}
