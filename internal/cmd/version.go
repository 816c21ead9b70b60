package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build information, overridden at link time with
// -ldflags "-X github.com/steveyegge/henchman/internal/cmd.Version=...".
var (
	Version   = "0.1.0"
	Commit    = ""
	BuildDate = ""
)

var versionCmd = &cobra.Command{
	Use:     "version",
	GroupID: GroupDiag,
	Short:   "Print version information",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func versionString() string {
	s := "henchman version " + Version
	if Commit != "" {
		s += " (" + Commit
		if BuildDate != "" {
			s += ", built " + BuildDate
		}
		s += ")"
	}
	return fmt.Sprintf("%s %s/%s", s, runtime.GOOS, runtime.GOARCH)
}
