package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/tasknotify/internal/build"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display version, commit, build date, and Go version information for tasknotify",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if build.IsDevBuild() {
				fmt.Fprintf(out, "tasknotify version %s (development build)\n", build.Version)
			} else {
				fmt.Fprintf(out, "tasknotify version %s\n", build.Version)
			}
			fmt.Fprintf(out, "Built from commit: %s\n", build.Commit)
			fmt.Fprintf(out, "Build date: %s\n", build.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		},
	}
}
