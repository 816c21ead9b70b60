package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/henchman/internal/style"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	GroupID: GroupConfig,
	Short:   "Show effective configuration",
	Long: `Show the settings henchman will use after applying henchman.toml,
HENCHMAN_* environment variables and global flags.`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	source := cfg.Path
	if source == "" {
		source = style.Dim.Render("(defaults)")
	}
	fmt.Fprintf(out, "%s %s\n\n", style.Bold.Render("Config:"), source)

	tbl := style.NewTable(
		style.Column{Name: "KEY", Width: 14},
		style.Column{Name: "VALUE", Width: 40},
	)
	for _, kv := range cfg.Settings() {
		tbl.AddRow(kv[0], kv[1])
	}
	fmt.Fprint(out, tbl.Render())
	return nil
}
