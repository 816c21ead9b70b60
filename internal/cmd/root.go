// Package cmd provides CLI commands for the henchman tool.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/steveyegge/henchman/internal/config"
	"github.com/steveyegge/henchman/internal/exitcode"
	"github.com/steveyegge/henchman/internal/logging"
	"github.com/steveyegge/henchman/internal/style"
)

var rootCmd = &cobra.Command{
	Use:     "henchman",
	Short:   "Henchman - supervised container deployments",
	Version: Version,
	Long: `Henchman reads a compose-style deployment document and runs each
declared service through a container engine (docker by default).

Every engine command runs in its own process group. Interrupting henchman
forwards the signal to that group and then henchman exits by the same
signal, so nothing is left running behind it.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Global flags.
var (
	configPath    string
	verbose       bool
	dryRun        bool
	propagateExit bool
)

// Effective settings for this invocation, populated by loadSettings.
var (
	cfg    = config.Default()
	logger = logging.Discard()
)

// Commands that still run when the config file is broken.
var configExemptCommands = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// loadSettings reads henchman.toml and the environment, applies the global
// flags on top and configures logging.
func loadSettings(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	loaded, err := config.Load(configPath, cwd)
	if err != nil {
		if !configExemptCommands[cmd.Name()] {
			if errors.Is(err, os.ErrNotExist) {
				return exitcode.Wrap(exitcode.ErrFileNotFound, "loading configuration", err)
			}
			return exitcode.Wrap(exitcode.ErrUsage, "loading configuration", err)
		}
		style.PrintWarning(cmd.ErrOrStderr(), "ignoring configuration: %v", err)
		loaded = config.Default()
	}
	if verbose {
		loaded.LogLevel = log.DebugLevel.String()
	}

	entry, err := logging.Setup(loaded.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return exitcode.Wrap(exitcode.ErrUsage, "configuring logging", err)
	}

	cfg = loaded
	logger = entry.WithField("cmd", buildCommandPath(cmd))
	if cfg.Path != "" {
		logger.WithField("path", cfg.Path).Debug("loaded config")
	}
	return nil
}

// Execute runs the root command and returns an exit code.
// The caller (main) should call os.Exit with this code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return exitcode.Success
	}
	err = classify(err)
	style.PrintError(rootCmd.ErrOrStderr(), "%v", err)
	return exitcode.Code(err)
}

// Command group IDs - used by subcommands to organize help output
const (
	GroupCompose = "compose"
	GroupConfig  = "config"
	GroupDiag    = "diag"
)

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCompose, Title: "Deployments:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration:"},
		&cobra.Group{ID: GroupDiag, Title: "Diagnostics:"},
	)

	rootCmd.SetHelpCommandGroupID(GroupDiag)
	rootCmd.SetCompletionCommandGroupID(GroupConfig)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return exitcode.Usage("%v\n\nRun '%s --help' for usage", err, buildCommandPath(cmd))
	})

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print engine commands instead of running them")
	rootCmd.PersistentFlags().BoolVar(&propagateExit, "propagate-exit", false, "Exit with the engine's exit code when it fails")
}

// buildCommandPath walks the command hierarchy to build the full command path.
// For example: "henchman compose up".
func buildCommandPath(cmd *cobra.Command) string {
	var parts []string
	for c := cmd; c != nil; c = c.Parent() {
		parts = append([]string{c.Name()}, parts...)
	}
	return strings.Join(parts, " ")
}

// requireSubcommand returns a RunE function for parent commands that require
// a subcommand. Without this, Cobra silently shows help and exits 0 for
// unknown subcommands like "henchman compose foobar", masking errors.
func requireSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return exitcode.Usage("requires a subcommand\n\nRun '%s --help' for usage", buildCommandPath(cmd))
	}
	return exitcode.Usage("unknown command %q for %q\n\nRun '%s --help' for available commands",
		args[0], buildCommandPath(cmd), buildCommandPath(cmd))
}
