package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/scrawl-labs/scrawl/internal/cli/config"
	"github.com/scrawl-labs/scrawl/pkg/diagram"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Render diagram text to SVG",
		Long: `Render diagram documents to SVG.

Each argument names a file; with no arguments (or "-") the document is
read from stdin. A single input renders to stdout unless --out names a
file. Multiple inputs always render to <name>.svg next to each source,
as does --watch.`,
		Example: `  # Render a file to stdout
  scrawl render pets.mmd

  # Render stdin to a file
  cat pets.mmd | scrawl render -o pets.svg

  # Render several files in place (pets.svg, flow.svg)
  scrawl render pets.mmd flow.mmd

  # Re-render on every save
  scrawl render --watch pets.mmd`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args)
		},
	}

	cmd.Flags().StringP("out", "o", "", "Write the SVG to this path (single input only)")
	cmd.Flags().BoolP("watch", "w", false, "Watch the input files and re-render on change")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	watch, _ := cmd.Flags().GetBool("watch")

	if out != "" && len(args) > 1 {
		return fmt.Errorf("--out takes a single input, got %d", len(args))
	}
	if watch {
		if len(args) == 0 {
			return fmt.Errorf("--watch needs file arguments")
		}
		for _, arg := range args {
			if arg == "-" {
				return fmt.Errorf("--watch cannot follow stdin")
			}
		}
	}

	// Watch mode always writes next to the sources so stdout stays
	// usable for logs.
	toFiles := watch || len(args) > 1

	if err := renderInputs(cmd, args, out, toFiles); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	return watchAndRender(cmd, args, out)
}

// renderInputs reads every input fresh and writes its SVG to the chosen
// destination.
func renderInputs(cmd *cobra.Command, args []string, out string, toFiles bool) error {
	docs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		res, err := diagram.Render(cmd.Context(), diagramID(doc.Name), doc.Text)
		if err != nil {
			return fmt.Errorf("%s: %w", doc.Name, err)
		}

		switch {
		case out != "":
			if err := os.WriteFile(out, res.SVG, 0600); err != nil {
				return err
			}
		case toFiles:
			if err := os.WriteFile(svgSibling(doc.Name), res.SVG, 0600); err != nil {
				return err
			}
		default:
			if _, err := cmd.OutOrStdout().Write(res.SVG); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}
	return nil
}

// svgSibling maps an input path to the .svg path written next to it.
func svgSibling(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".svg"
}

// watchAndRender re-renders the inputs whenever one of them is saved.
// It blocks until the command context is canceled.
func watchAndRender(cmd *cobra.Command, args []string, out string) error {
	logger := config.GetLogger(cmd.Context())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the parent directories, not the files: editors that save by
	// rename would otherwise detach the watch after the first write.
	targets := make(map[string]bool, len(args))
	dirs := make(map[string]bool)
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return err
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %d file(s) for changes, Ctrl-C to stop\n", len(targets))

	var debounce *time.Timer
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				if err := renderInputs(cmd, args, out, true); err != nil {
					logger.Error("render failed", "error", err)
					fmt.Fprintf(cmd.ErrOrStderr(), "render: %v\n", err)
					return
				}
				logger.Debug("re-rendered", "inputs", len(args))
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}
