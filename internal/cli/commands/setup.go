// Package commands implements the scrawl subcommands.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scrawl-labs/scrawl/internal/cli/config"
)

// inputDoc is a named diagram source read from a file or stdin.
type inputDoc struct {
	Name string
	Text string
}

// readInputs collects diagram sources from the argument list. Each
// argument names a file; "-" reads stdin. An empty list reads stdin once.
func readInputs(cmd *cobra.Command, args []string) ([]inputDoc, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	docs := make([]inputDoc, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			docs = append(docs, inputDoc{Name: "stdin", Text: string(data)})
			continue
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		docs = append(docs, inputDoc{Name: arg, Text: string(data)})
	}
	return docs, nil
}

var idUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// diagramID derives a stable SVG element id from an input name. The id
// lands in the id attribute of the root <svg>, so anything outside the
// XML Name alphabet is squashed.
func diagramID(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	id := strings.Trim(idUnsafe.ReplaceAllString(base, "-"), "-")
	if id == "" {
		return "diagram"
	}
	if id[0] >= '0' && id[0] <= '9' {
		id = "d-" + id
	}
	return id
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		Theme:   getEnvOrDefault("SCRAWL_THEME", config.DefaultTheme),
		Verbose: os.Getenv("SCRAWL_VERBOSE") == "true",
		Serve: config.ServeConfig{
			Addr:  getEnvOrDefault("SCRAWL_SERVE_ADDR", config.DefaultAddr),
			Store: os.Getenv("SCRAWL_SERVE_STORE"),
			Watch: os.Getenv("SCRAWL_SERVE_WATCH"),
		},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
