package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ariel-frischer/tasknotify/internal/config"
	"github.com/ariel-frischer/tasknotify/internal/notify"
)

// channel describes one notification subcommand. Adding a channel means
// adding a config variant, a notify.Sender and an entry in channels.
type channel struct {
	name    string
	short   string
	long    string
	example string

	// newSender reads and validates the channel settings from src
	newSender func(src *config.Source, timeout time.Duration) (notify.Sender, error)
}

var channels = []channel{
	{
		name:  config.ChannelBark,
		short: "Send a Bark push notification",
		long:  "Send the notification as a Bark push (day.app compatible API).\n\n" + envHelp(config.ChannelBark),
		example: `  tasknotify bark --task-title "Refactor parser" --status success --summary "All tests pass"
  tasknotify bark --task-title "Deploy" --status failed --summary "Rollback" --dry-run`,
		newSender: newBarkSender,
	},
	{
		name:  config.ChannelEmail,
		short: "Send an SMTP email notification",
		long:  "Send the notification as a plain-text email over SMTP.\n\n" + envHelp(config.ChannelEmail),
		example: `  tasknotify email --task-title "Nightly build" --status failed --summary "2 tests failed"
  CODEX_EMAIL_USE_TLS=false CODEX_EMAIL_USE_SSL=true tasknotify email --task-title T --status ok --summary S --dry-run`,
		newSender: newEmailSender,
	},
}

// envHelp lists the environment variables a channel reads.
func envHelp(channel string) string {
	var b strings.Builder
	b.WriteString("Environment:")
	for _, key := range config.KeysFor(channel) {
		fmt.Fprintf(&b, "\n  %-24s %s", key.Env, key.Description)
		if key.Default != nil {
			fmt.Fprintf(&b, " (default %v)", key.Default)
		}
	}
	return b.String()
}

func newBarkSender(src *config.Source, timeout time.Duration) (notify.Sender, error) {
	settings, err := src.BarkSettings()
	if err != nil {
		return nil, err
	}
	cfg, err := config.NewBarkConfig(settings, timeout)
	if err != nil {
		return nil, err
	}
	return notify.NewBarkSender(cfg), nil
}

func newEmailSender(src *config.Source, timeout time.Duration) (notify.Sender, error) {
	settings, err := src.EmailSettings()
	if err != nil {
		return nil, err
	}
	cfg, err := config.NewEmailConfig(settings, timeout)
	if err != nil {
		return nil, err
	}
	return notify.NewEmailSender(cfg), nil
}
