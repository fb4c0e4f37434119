// Package cli provides the command-line interface for scrawl.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrawl-labs/scrawl/internal/cli/commands"
	"github.com/scrawl-labs/scrawl/internal/cli/config"
	"github.com/scrawl-labs/scrawl/pkg/diagram"

	// Register the built-in diagram kinds.
	_ "github.com/scrawl-labs/scrawl/pkg/diagrams"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = diagram.Version
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scrawl",
		Short: "scrawl - Text-to-diagram renderer",
		Long: `scrawl turns plain-text diagram descriptions into SVG.

Documents start with a header naming the diagram kind (flowchart, sequence,
gantt, pie, info) and may carry YAML front matter and %%{...}%% directives.
Rendering is deterministic: the same text always produces the same SVG.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			// Load configuration from file, env vars, and CLI flags
			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			// Store logger in context for commands
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			cmd.SetContext(context.WithValue(cmd.Context(), config.LoggerKey(), logger))

			// Apply site configuration to the renderer
			diagram.Initialize(cfg.SiteConfig())

			// Print config file used (if verbose)
			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./scrawl.yaml)")
	rootCmd.PersistentFlags().StringP("theme", "t", config.DefaultTheme, "Color theme for rendered diagrams")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	// Register completion for theme flag
	_ = rootCmd.RegisterFlagCompletionFunc("theme", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.ThemeNames(), cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for scrawl.

To load completions:

Bash:
  $ source <(scrawl completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ scrawl completion bash > /etc/bash_completion.d/scrawl
  # macOS:
  $ scrawl completion bash > $(brew --prefix)/etc/bash_completion.d/scrawl

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ scrawl completion zsh > "${fpath[1]}/_scrawl"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ scrawl completion fish | source

  # To load completions for each session, execute once:
  $ scrawl completion fish > ~/.config/fish/completions/scrawl.fish

PowerShell:
  PS> scrawl completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> scrawl completion powershell > scrawl.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
