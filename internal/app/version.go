package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion   = "dev"
	appBuildTime = "unknown"
	appCommit    = "unknown"
)

// SetVersion records build information set by ldflags in main.
func SetVersion(version, buildTime, commit string) {
	appVersion = version
	appBuildTime = buildTime
	appCommit = commit
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cover-palette version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cover-palette %s\n", appVersion)
			fmt.Fprintf(out, "  Build time: %s\n", appBuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", appCommit)
		},
	}
}
