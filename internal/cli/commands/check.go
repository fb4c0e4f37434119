package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/scrawl-labs/scrawl/pkg/diagram"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Validate diagram documents without rendering",
		Long: `Parse diagram documents and report errors without producing SVG.

Every input runs the full pipeline up to the drawing step: front matter,
directives, detection and the kind's grammar. The exit status is non-zero
when any document fails.`,
		Example: `  # Check one file
  scrawl check pets.mmd

  # Check a whole directory of diagrams
  scrawl check diagrams/*.mmd`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args)
		},
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	docs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Kind", "Status", "Detail"})

	var failed int
	for _, doc := range docs {
		typ, err := checkOne(cmd.Context(), doc.Text)
		if err != nil {
			failed++
			t.AppendRow(table.Row{doc.Name, typ, failStyle.Render("error"), checkDetail(err)})
			continue
		}
		t.AppendRow(table.Row{doc.Name, typ, okStyle.Render("ok"), ""})
	}
	t.Render()

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(docs))
	}
	return nil
}

// checkOne runs the render pipeline up to and including the parse. The
// kind comes back even when the parse fails, so the report can name it.
func checkOne(ctx context.Context, text string) (string, error) {
	if limit := diagram.CurrentConfig().MaxTextSize; limit > 0 && len(text) > limit {
		return "", &diagram.TextSizeError{Size: len(text), Limit: limit}
	}

	p, err := diagram.Preprocess(text)
	if err != nil {
		return "", err
	}

	diagram.ResetConfig()
	diagram.AddDirectives(p.Config)

	typ, err := diagram.DetectType(p.Code, diagram.CurrentConfig())
	if err != nil {
		return "", err
	}

	_, err = diagram.FromText(ctx, p.Code, diagram.Metadata{Title: p.Title})
	return typ, err
}

func checkDetail(err error) string {
	var perr *diagram.ParseError
	if errors.As(err, &perr) {
		return fmt.Sprintf("line %d: %s", perr.Line, perr.Message)
	}
	return err.Error()
}
