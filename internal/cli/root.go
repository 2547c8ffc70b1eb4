// tasknotify - task completion notifications for coding agents
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/tasknotify

// Package cli provides the Cobra-based command line for tasknotify.
// Each notification channel (bark, email) is a subcommand registered from
// the channel table; the root command owns the shared flags, debug logging
// and the single stderr diagnostic printed on failure.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"

	clierrors "github.com/ariel-frischer/tasknotify/internal/errors"
	"github.com/ariel-frischer/tasknotify/internal/logging"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tasknotify",
		Short: "Notify a human that an agent task finished",
		Long: `tasknotify sends one short, structured notification when an automated
task finishes: a Bark push (day.app compatible) or an SMTP email.

Channel settings come from CODEX_* environment variables, optionally layered
over a JSON or YAML config file given with --config.

Source: https://github.com/ariel-frischer/tasknotify`,
		Example: `  # Push to a phone via Bark
  tasknotify bark --task-title "Refactor parser" --status success --summary "All tests pass"

  # Preview an email without connecting
  tasknotify email --task-title "Nightly build" --status failed --summary "2 tests failed" --dry-run`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				logging.Init(cmd.ErrOrStderr(), "debug")
			} else {
				logging.Init(io.Discard, "")
			}
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.Wrap(err, clierrors.Validation)
	})

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON or YAML settings file (environment overrides it)")
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging on stderr")

	for _, ch := range channels {
		rootCmd.AddCommand(newChannelCmd(ch, opts))
	}
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// run executes args against a fresh command tree. Any failure is printed
// to stderr exactly once.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if !clierrors.IsCLIError(err) {
			// cobra's own argument errors (unknown command, missing required flag)
			err = clierrors.Wrap(err, clierrors.Validation)
		}
		clierrors.Fprint(stderr, err)
	}
	return ExitCode(err)
}
