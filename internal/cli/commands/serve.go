package commands

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/scrawl-labs/scrawl/internal/cli/config"
	"github.com/scrawl-labs/scrawl/internal/store"
	"github.com/scrawl-labs/scrawl/internal/ui"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live preview server",
		Long: `Start a local web server with a live diagram editor.

The editor re-renders as you type. With --watch, saving a diagram file in
the watched directory re-renders it in every connected browser. With
--store, snippets can be saved and shared by URL.`,
		Example: `  # Editor only
  scrawl serve

  # Keep snippets across restarts
  scrawl serve --store snippets.db

  # Re-render diagrams/ on save
  scrawl serve --watch diagrams`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().String("addr", config.DefaultAddr, "Address to listen on")
	cmd.Flags().String("store", "", "Snippet database path (use \":memory:\" for in-process)")
	cmd.Flags().String("watch", "", "Directory to watch for diagram files")
	cmd.Flags().Bool("no-browser", false, "Don't auto-open browser")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	// Flags flow through the config loader, so cfg.Serve already has
	// flag > env > file precedence applied.
	serveCfg := cfg.Serve

	var st store.Store
	if serveCfg.Store != "" {
		s, err := store.Open(serveCfg.Store)
		if err != nil {
			return fmt.Errorf("opening snippet store: %w", err)
		}
		defer func() { _ = s.Close() }()
		st = s
	}

	if serveCfg.Watch != "" {
		if _, err := os.Stat(serveCfg.Watch); os.IsNotExist(err) {
			return fmt.Errorf("watch directory does not exist: %s", serveCfg.Watch)
		}
	}

	server := ui.NewServer(ui.Config{
		Addr:     serveCfg.Addr,
		Store:    st,
		WatchDir: serveCfg.Watch,
		Logger:   logger,
	})

	if noBrowser, _ := cmd.Flags().GetBool("no-browser"); !noBrowser {
		go openBrowser("http://" + serveCfg.Addr)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Starting preview server on http://%s\n", serveCfg.Addr)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
