package notify

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/tasknotify/internal/config"
	clierrors "github.com/ariel-frischer/tasknotify/internal/errors"
	"github.com/ariel-frischer/tasknotify/internal/logging"
)

// Sender performs one delivery attempt on a channel.
type Sender interface {
	// Config returns the validated channel configuration
	Config() config.ChannelConfig

	// Plan renders the request Send would make. It must be deterministic.
	Plan(msg Message) string

	// Send delivers msg once and returns the response text, if any.
	Send(ctx context.Context, msg Message) (string, error)
}

// Outcome is the result of a delivery: Err is nil on success.
type Outcome struct {
	// Response is the transport response text (live mode only)
	Response string

	// Err is a *errors.CLIError describing the failure
	Err error
}

// OK reports whether the delivery succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Deliver sends msg through s, or writes s.Plan(msg) to w when dryRun is
// set. Send is never called in dry-run mode. Errors that are not already
// categorized are reported as transport failures.
func Deliver(ctx context.Context, s Sender, msg Message, dryRun bool, w io.Writer) Outcome {
	log := logging.Log.With().Str("channel", s.Config().Channel()).Logger()

	if dryRun {
		log.Debug().Msg("dry run, rendering plan")
		if _, err := fmt.Fprint(w, s.Plan(msg)); err != nil {
			return Outcome{Err: clierrors.WrapWithMessage(err, clierrors.Transport, "failed to write dry-run plan")}
		}
		return Outcome{}
	}

	log.Debug().Msg("sending notification")
	response, err := s.Send(ctx, msg)
	if err != nil {
		log.Debug().Err(err).Msg("delivery failed")
		if clierrors.IsCLIError(err) {
			return Outcome{Err: err}
		}
		return Outcome{Err: clierrors.Wrap(err, clierrors.Transport)}
	}
	log.Debug().Int("response_bytes", len(response)).Msg("delivered")
	return Outcome{Response: response}
}

// renderPlan joins the config description and message fields, one per
// line, with a trailing newline.
func renderPlan(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
