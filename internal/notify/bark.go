package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ariel-frischer/tasknotify/internal/build"
	"github.com/ariel-frischer/tasknotify/internal/config"
	clierrors "github.com/ariel-frischer/tasknotify/internal/errors"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// BarkSender delivers notifications to a Bark server.
type BarkSender struct {
	cfg    *config.BarkConfig
	client *http.Client
}

// NewBarkSender creates a sender whose HTTP client is bounded by cfg.Timeout.
func NewBarkSender(cfg *config.BarkConfig) *BarkSender {
	return &BarkSender{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Config returns the Bark configuration.
func (s *BarkSender) Config() config.ChannelConfig { return s.cfg }

// Plan renders the POST the sender would make.
func (s *BarkSender) Plan(msg Message) string {
	lines := append(s.cfg.Describe(),
		"title: "+msg.Subject,
		"body: "+msg.Body,
	)
	return renderPlan(lines...)
}

// Send posts the form-encoded title and body. Any HTTP status below 400
// counts as delivered and its body is returned trimmed.
func (s *BarkSender) Send(ctx context.Context, msg Message) (string, error) {
	form := url.Values{}
	form.Set("title", msg.Subject)
	form.Set("body", msg.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TargetURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", clierrors.WrapWithMessage(err, clierrors.Transport, "Failed to send Bark notification")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", build.UserAgent())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", clierrors.WrapWithMessage(err, clierrors.Transport, "Failed to send Bark notification")
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	text := strings.TrimSpace(strings.ToValidUTF8(string(data), ""))

	if resp.StatusCode >= http.StatusBadRequest {
		message := fmt.Sprintf("HTTP %d: %s", resp.StatusCode, reasonPhrase(resp))
		if text != "" {
			message += ": " + text
		}
		return "", clierrors.NewTransportError("%s", message)
	}
	if readErr != nil {
		return "", clierrors.WrapWithMessage(readErr, clierrors.Transport, "Failed to read Bark response")
	}
	return text, nil
}

// reasonPhrase returns the server's reason phrase, or the standard text
// for the status code when the server sent none.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
