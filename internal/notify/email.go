package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/ariel-frischer/tasknotify/internal/config"
	clierrors "github.com/ariel-frischer/tasknotify/internal/errors"
	"github.com/ariel-frischer/tasknotify/internal/logging"
)

// EmailSender delivers notifications over SMTP.
type EmailSender struct {
	cfg *config.EmailConfig

	// tlsConfig overrides the TLS settings used for SSL and STARTTLS;
	// nil verifies the server against the system roots.
	tlsConfig *tls.Config
}

// NewEmailSender creates an SMTP sender for cfg.
func NewEmailSender(cfg *config.EmailConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// Config returns the email configuration.
func (s *EmailSender) Config() config.ChannelConfig { return s.cfg }

// Plan renders the SMTP session the sender would open.
func (s *EmailSender) Plan(msg Message) string {
	lines := append(s.cfg.Describe(),
		"subject: "+msg.Subject,
		"body: "+msg.Body,
	)
	return renderPlan(lines...)
}

// Send delivers msg in a single SMTP session. Email has no response text.
func (s *EmailSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := s.send(ctx, msg); err != nil {
		return "", clierrors.WrapWithMessage(err, clierrors.Transport, "Failed to send email notification")
	}
	return "", nil
}

func (s *EmailSender) send(ctx context.Context, msg Message) error {
	deadline := time.Now().Add(s.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	log := logging.Log.With().Str("addr", s.cfg.Addr()).Logger()

	conn, err := s.dial(ctx, deadline)
	if err != nil {
		return err
	}
	// One deadline bounds the whole session; cancellation trips it early.
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return err
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if s.cfg.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			return errors.New("server does not support STARTTLS")
		}
		log.Debug().Msg("starting TLS")
		if err := client.StartTLS(s.tlsConfigFor()); err != nil {
			return err
		}
	}

	if s.cfg.HasAuth() {
		log.Debug().Str("username", s.cfg.Username).Msg("authenticating")
		if err := client.Auth(plainAuth{username: s.cfg.Username, password: s.cfg.Password}); err != nil {
			return err
		}
	}

	if err := client.Mail(envelopeAddress(s.cfg.From)); err != nil {
		return err
	}
	for _, rcpt := range s.cfg.To {
		if err := client.Rcpt(envelopeAddress(rcpt)); err != nil {
			return fmt.Errorf("recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(composeMessage(s.cfg, msg)); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	log.Debug().Int("recipients", len(s.cfg.To)).Msg("message accepted")
	return client.Quit()
}

// dial opens the TCP connection, wrapped in TLS right away in SSL mode.
func (s *EmailSender) dial(ctx context.Context, deadline time.Time) (net.Conn, error) {
	dialer := &net.Dialer{Deadline: deadline}
	if s.cfg.UseSSL {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: s.tlsConfigFor()}
		return tlsDialer.DialContext(ctx, "tcp", s.cfg.Addr())
	}
	return dialer.DialContext(ctx, "tcp", s.cfg.Addr())
}

func (s *EmailSender) tlsConfigFor() *tls.Config {
	if s.tlsConfig != nil {
		cfg := s.tlsConfig.Clone()
		if cfg.ServerName == "" {
			cfg.ServerName = s.cfg.Host
		}
		return cfg
	}
	return &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
}

// plainAuth implements AUTH PLAIN (RFC 4616). Unlike smtp.PlainAuth it
// does not refuse unencrypted connections: the connection mode is whatever
// CODEX_EMAIL_USE_TLS and CODEX_EMAIL_USE_SSL selected.
type plainAuth struct {
	username string
	password string
}

func (a plainAuth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	return "PLAIN", []byte("\x00" + a.username + "\x00" + a.password), nil
}

func (a plainAuth) Next(_ []byte, more bool) ([]byte, error) {
	if more {
		return nil, errors.New("unexpected server challenge during AUTH PLAIN")
	}
	return nil, nil
}

// envelopeAddress extracts the bare address from "Name <addr>" forms.
func envelopeAddress(addr string) string {
	if parsed, err := mail.ParseAddress(addr); err == nil {
		return parsed.Address
	}
	return addr
}

// composeMessage renders the RFC 5322 message: headers, a blank line and
// the plain-text body, all with CRLF line endings.
func composeMessage(cfg *config.EmailConfig, msg Message) []byte {
	var b strings.Builder
	writeHeader(&b, "From", headerValue(cfg.From))
	writeHeader(&b, "To", headerValue(strings.Join(cfg.To, ", ")))
	writeHeader(&b, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", "text/plain; charset=utf-8")
	writeHeader(&b, "Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")

	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

func writeHeader(b *strings.Builder, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}

// headerValue keeps configured addresses on one header line.
func headerValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
