package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/tasknotify/internal/config"
	"github.com/ariel-frischer/tasknotify/internal/logging"
	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/ariel-frischer/tasknotify/internal/project"
	"github.com/spf13/cobra"
)

// sendOptions holds the per-notification flags.
type sendOptions struct {
	taskTitle      string
	status         string
	summary        string
	projectName    string
	timeoutSeconds float64
	dryRun         bool
}

func newChannelCmd(ch channel, root *rootOptions) *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:     ch.name,
		Short:   ch.short,
		Long:    ch.long,
		Example: ch.example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChannel(cmd, ch, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.taskTitle, "task-title", "", "Task title, used as the subject (required)")
	cmd.Flags().StringVar(&opts.status, "status", "", "Task status, e.g. success or failed (required, may be empty)")
	cmd.Flags().StringVar(&opts.summary, "summary", "", "Short result summary (required)")
	cmd.Flags().StringVar(&opts.projectName, "project-name", "", "Project name (default: detected from AGENTS.md or the working directory)")
	cmd.Flags().Float64Var(&opts.timeoutSeconds, "timeout", notify.DefaultTimeoutSeconds, "Transport timeout in seconds")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the request that would be sent instead of sending it")

	_ = cmd.MarkFlagRequired("task-title")
	_ = cmd.MarkFlagRequired("status")
	_ = cmd.MarkFlagRequired("summary")

	return cmd
}

// runChannel validates the request, then the channel configuration, then
// resolves the project and delivers. Nothing is read from the environment
// until the request itself is valid.
func runChannel(cmd *cobra.Command, ch channel, root *rootOptions, opts *sendOptions) error {
	// An unusable timeout leaves Timeout zero; Validate reports it after
	// the title and summary checks.
	timeout, _ := notify.TimeoutFromSeconds(opts.timeoutSeconds)
	req := notify.Request{
		TaskTitle:   opts.taskTitle,
		Status:      opts.status,
		Summary:     opts.summary,
		ProjectName: opts.projectName,
		Timeout:     timeout,
		DryRun:      opts.dryRun,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	src, err := config.Load(root.configPath)
	if err != nil {
		return err
	}
	src.LogSettings(ch.name)
	sender, err := ch.newSender(src, req.Timeout)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	projectName := project.Resolve(cwd, req.ProjectName)
	logging.Log.Debug().
		Str("channel", ch.name).
		Str("project", projectName).
		Dur("timeout", req.Timeout).
		Bool("dry_run", req.DryRun).
		Msg("dispatching notification")

	msg := notify.Build(req, sender.Config().Device(), projectName)
	outcome := notify.Deliver(cmd.Context(), sender, msg, req.DryRun, cmd.OutOrStdout())
	if !outcome.OK() {
		return outcome.Err
	}
	if outcome.Response != "" {
		fmt.Fprintln(cmd.OutOrStdout(), outcome.Response)
	}
	return nil
}
