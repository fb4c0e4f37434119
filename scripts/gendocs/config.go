package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	cliconfig "github.com/scrawl-labs/scrawl/internal/cli/config"
)

// generateConfigDocs generates the scrawl.yaml configuration reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	// Create output directory
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "general", "serve", "site"
}

// getConfigSchema returns the configuration schema definition.
// This is based on internal/cli/config/types.go.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "theme", Type: "string", Default: cliconfig.DefaultTheme, Description: "Render theme applied to all diagrams", Category: "general"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Enable debug logging", Category: "general"},

		{Name: "serve.addr", Type: "string", Default: cliconfig.DefaultAddr, Description: "Preview server listen address (host:port)", Category: "serve"},
		{Name: "serve.store", Type: "string", Description: "SQLite snippet store path (empty disables saving)", Category: "serve"},
		{Name: "serve.watch", Type: "string", Description: "Directory to watch for diagram file changes", Category: "serve"},

		{Name: "site", Type: "map", Description: "Site-wide diagram configuration merged under every render (same keys as front matter config)", Category: "site"},
	}
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	// Frontmatter
	w.Frontmatter("Configuration", "scrawl configuration reference")
	w.GeneratedMarker()

	// Title and intro
	w.Header(1, "Configuration")
	w.Paragraph("scrawl is configured via `scrawl.yaml` (or `scrawl.yml`) in the working directory. Every key can also be set through a `SCRAWL_`-prefixed environment variable; flags take precedence over the environment, which takes precedence over the file.")

	fields := getConfigSchema()

	for _, section := range []struct {
		category string
		title    string
		intro    string
	}{
		{"general", "General Settings", "Top-level options:"},
		{"serve", "Preview Server", "Options under the `serve` key, used by `scrawl serve`:"},
		{"site", "Site Configuration", "Diagram defaults applied before front matter and directives:"},
	} {
		w.Header(2, section.title)
		w.Paragraph(section.intro)

		headers := []string{"Field", "Type", "Default", "Description"}
		var rows [][]string
		for _, f := range fields {
			if f.Category != section.category {
				continue
			}
			defVal := f.Default
			if defVal == "" {
				defVal = "-"
			} else {
				defVal = InlineCode(defVal)
			}
			rows = append(rows, []string{
				InlineCode(f.Name),
				f.Type,
				defVal,
				f.Description,
			})
		}
		w.Table(headers, rows)
	}

	// Themes
	w.Header(2, "Themes")
	w.Paragraph("Known themes:")
	var themes []string
	for _, name := range cliconfig.ThemeNames() {
		themes = append(themes, InlineCode(name))
	}
	w.BulletList(themes)

	// Example
	w.Header(2, "Example")
	w.CodeBlock("yaml", strings.TrimSpace(`
theme: dark
serve:
  addr: localhost:7420
  store: .scrawl/snippets.db
  watch: diagrams
site:
  pie:
    textPosition: 0.5
  gantt:
    displayMode: compact
`))

	// Write file
	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
