package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrawl-labs/scrawl/pkg/diagram"
)

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file...]",
		Short: "Report the diagram kind of each document",
		Long: `Detect which diagram kind each document's header selects.

Detection runs the same probes as rendering but stops before parsing,
so it is cheap and never loads a diagram implementation.`,
		Example: `  scrawl detect pets.mmd flow.mmd

  cat pets.mmd | scrawl detect`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args)
		},
	}
}

func runDetect(cmd *cobra.Command, args []string) error {
	docs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	var failed int
	for _, doc := range docs {
		typ, err := detectOne(doc.Text)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", doc.Name, err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", doc.Name, typ)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents not recognized", failed, len(docs))
	}
	return nil
}

// detectOne strips front matter and directives, then probes the header.
func detectOne(text string) (string, error) {
	p, err := diagram.Preprocess(text)
	if err != nil {
		return "", err
	}
	return diagram.DetectType(p.Code, diagram.CurrentConfig())
}
