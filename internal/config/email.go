package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	clierrors "github.com/ariel-frischer/tasknotify/internal/errors"
)

// EmailSettings holds the raw SMTP settings. Field order is check order.
type EmailSettings struct {
	MachineName string `koanf:"machine_name" env:"CODEX_MACHINE_NAME" validate:"required"`
	SMTPHost    string `koanf:"email_smtp_host" env:"CODEX_EMAIL_SMTP_HOST" validate:"required"`
	From        string `koanf:"email_from" env:"CODEX_EMAIL_FROM" validate:"required"`
	To          string `koanf:"email_to" env:"CODEX_EMAIL_TO" validate:"required"`
	Username    string `koanf:"email_username" env:"CODEX_EMAIL_USERNAME" validate:"required_with=Password"`
	Password    string `koanf:"email_password" env:"CODEX_EMAIL_PASSWORD" validate:"required_with=Username"`
	Port        string `koanf:"email_smtp_port" env:"CODEX_EMAIL_SMTP_PORT"`
	UseTLS      string `koanf:"email_use_tls" env:"CODEX_EMAIL_USE_TLS"`
	UseSSL      string `koanf:"email_use_ssl" env:"CODEX_EMAIL_USE_SSL"`
}

// EmailConfig is a validated SMTP configuration.
type EmailConfig struct {
	MachineName string
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	To          []string
	UseTLS      bool // upgrade a plain connection with STARTTLS
	UseSSL      bool // connect with implicit TLS
	Timeout     time.Duration
}

// NewEmailConfig validates settings and returns the SMTP configuration.
// Problems are reported in a fixed order: required settings, credential
// pair, port, TLS flag, SSL flag, TLS/SSL conflict, recipient list.
func NewEmailConfig(s EmailSettings, timeout time.Duration) (*EmailConfig, error) {
	s.MachineName = strings.TrimSpace(s.MachineName)
	s.SMTPHost = strings.TrimSpace(s.SMTPHost)
	s.From = strings.TrimSpace(s.From)
	s.To = strings.TrimSpace(s.To)
	s.Username = strings.TrimSpace(s.Username)

	if err := checkSettings(s); err != nil {
		return nil, err
	}

	port, err := ParsePort(EnvSMTPPort, s.Port)
	if err != nil {
		return nil, err
	}
	useTLS, err := ParseBool(EnvUseTLS, s.UseTLS)
	if err != nil {
		return nil, err
	}
	useSSL, err := ParseBool(EnvUseSSL, s.UseSSL)
	if err != nil {
		return nil, err
	}

	cfg := &EmailConfig{
		MachineName: s.MachineName,
		Host:        s.SMTPHost,
		Port:        port,
		Username:    s.Username,
		Password:    s.Password,
		From:        s.From,
		To:          SplitRecipients(s.To),
		UseTLS:      useTLS,
		UseSSL:      useSSL,
		Timeout:     timeout,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Channel returns "email".
func (c *EmailConfig) Channel() string { return ChannelEmail }

// Device returns the machine name.
func (c *EmailConfig) Device() string { return c.MachineName }

// Validate checks the SMTP configuration invariants.
func (c *EmailConfig) Validate() error {
	switch {
	case c.MachineName == "":
		return clierrors.MissingSetting(EnvMachineName)
	case c.Host == "":
		return clierrors.MissingSetting(EnvSMTPHost)
	case c.From == "":
		return clierrors.MissingSetting(EnvFrom)
	case c.Username != "" && c.Password == "":
		return clierrors.MissingSetting(EnvPassword)
	case c.Password != "" && c.Username == "":
		return clierrors.MissingSetting(EnvUsername)
	case c.Port < 1 || c.Port > 65535:
		return clierrors.NewConfigError("%s must be between 1 and 65535.", EnvSMTPPort)
	case c.UseTLS && c.UseSSL:
		return clierrors.ConflictingSettings(EnvUseTLS, EnvUseSSL)
	case len(c.To) == 0:
		return clierrors.NewConfigError("%s must contain at least one recipient.", EnvTo)
	case c.Timeout <= 0:
		return clierrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Addr returns host:port for dialing.
func (c *EmailConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// HasAuth reports whether credentials were supplied.
func (c *EmailConfig) HasAuth() bool {
	return c.Username != ""
}

// Describe returns the connection and envelope part of the dry-run plan.
func (c *EmailConfig) Describe() []string {
	return []string{
		fmt.Sprintf("SMTP host: %s", c.Host),
		fmt.Sprintf("SMTP port: %d", c.Port),
		"use TLS: " + planFlag(c.UseTLS),
		"use SSL: " + planFlag(c.UseSSL),
		fmt.Sprintf("from: %s", c.From),
		fmt.Sprintf("to: %s", strings.Join(c.To, ", ")),
	}
}

// planFlag renders a mode flag in the dry-run plan as True or False.
func planFlag(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
