package notify

import (
	"math"
	"strings"
	"time"

	clierrors "github.com/ariel-frischer/tasknotify/internal/errors"
)

// DefaultTimeoutSeconds is the transport timeout when none is given.
const DefaultTimeoutSeconds = 10.0

// Body line labels, in the order they appear.
const (
	LabelDevice  = "Device"
	LabelProject = "Project"
	LabelStatus  = "Status"
	LabelSummary = "Summary"
)

// Request is one notification as requested on the command line.
type Request struct {
	// TaskTitle becomes the message subject; must not be blank
	TaskTitle string

	// Status is free text such as "success" or "failed"; may be empty
	Status string

	// Summary describes the result; must not be blank
	Summary string

	// ProjectName overrides project detection when non-empty
	ProjectName string

	// Timeout bounds the transport call
	Timeout time.Duration

	// DryRun renders the delivery plan instead of sending
	DryRun bool
}

// Validate checks the request fields in order: title, summary, timeout.
func (r Request) Validate() error {
	if strings.TrimSpace(r.TaskTitle) == "" {
		return clierrors.EmptyFlag("task-title")
	}
	if strings.TrimSpace(r.Summary) == "" {
		return clierrors.EmptyFlag("summary")
	}
	if r.Timeout <= 0 {
		return clierrors.NewValidationError("--timeout must be a positive number of seconds.")
	}
	return nil
}

// TimeoutFromSeconds converts a positive, finite number of seconds.
func TimeoutFromSeconds(seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0, clierrors.NewValidationError("--timeout must be a positive number of seconds.")
	}
	d := time.Duration(seconds * float64(time.Second))
	if d <= 0 {
		return 0, clierrors.NewValidationError("--timeout must be a positive number of seconds.")
	}
	return d, nil
}

// Message is the channel-agnostic notification content.
type Message struct {
	Subject string
	Body    string
}

// Build assembles the message. The body always has the four lines Device,
// Project, Status and Summary in that order, even when a value is empty.
func Build(r Request, device, project string) Message {
	lines := []string{
		LabelDevice + ": " + device,
		LabelProject + ": " + project,
		LabelStatus + ": " + strings.TrimSpace(r.Status),
		LabelSummary + ": " + strings.TrimSpace(r.Summary),
	}
	return Message{
		Subject: strings.TrimSpace(r.TaskTitle),
		Body:    strings.Join(lines, "\n"),
	}
}
