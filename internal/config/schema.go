package config

// Channel names used on the command line.
const (
	ChannelBark  = "bark"
	ChannelEmail = "email"
)

// Environment variables read by the channels.
const (
	EnvMachineName = "CODEX_MACHINE_NAME"
	EnvBarkKey     = "CODEX_BARK_KEY"
	EnvBarkBaseURL = "CODEX_BARK_BASE_URL"
	EnvSMTPHost    = "CODEX_EMAIL_SMTP_HOST"
	EnvSMTPPort    = "CODEX_EMAIL_SMTP_PORT"
	EnvUsername    = "CODEX_EMAIL_USERNAME"
	EnvPassword    = "CODEX_EMAIL_PASSWORD"
	EnvFrom        = "CODEX_EMAIL_FROM"
	EnvTo          = "CODEX_EMAIL_TO"
	EnvUseTLS      = "CODEX_EMAIL_USE_TLS"
	EnvUseSSL      = "CODEX_EMAIL_USE_SSL"
)

// EnvPrefix is stripped from environment variable names to form config keys.
const EnvPrefix = "CODEX_"

// DefaultBarkBaseURL is the public Bark endpoint.
const DefaultBarkBaseURL = "https://api.day.app"

// KeySchema describes one known setting.
type KeySchema struct {
	Key         string      // config file key (e.g., "email_smtp_port")
	Env         string      // environment variable name
	Channels    []string    // channels that read the setting
	Secret      bool        // value must not be echoed in listings
	Description string      // human-readable description for help text
	Default     interface{} // nil when the setting has no default
}

// KnownKeys lists every setting in the order it is documented.
var KnownKeys = []KeySchema{
	{
		Key:         "machine_name",
		Env:         EnvMachineName,
		Channels:    []string{ChannelBark, ChannelEmail},
		Description: "Device name shown in the notification body (required)",
	},
	{
		Key:         "bark_key",
		Env:         EnvBarkKey,
		Channels:    []string{ChannelBark},
		Secret:      true,
		Description: "Bark device key (required)",
	},
	{
		Key:         "bark_base_url",
		Env:         EnvBarkBaseURL,
		Channels:    []string{ChannelBark},
		Description: "Bark server base URL",
		Default:     DefaultBarkBaseURL,
	},
	{
		Key:         "email_smtp_host",
		Env:         EnvSMTPHost,
		Channels:    []string{ChannelEmail},
		Description: "SMTP server host (required)",
	},
	{
		Key:         "email_smtp_port",
		Env:         EnvSMTPPort,
		Channels:    []string{ChannelEmail},
		Description: "SMTP server port",
		Default:     "587",
	},
	{
		Key:         "email_username",
		Env:         EnvUsername,
		Channels:    []string{ChannelEmail},
		Description: "SMTP username (set together with the password)",
	},
	{
		Key:         "email_password",
		Env:         EnvPassword,
		Channels:    []string{ChannelEmail},
		Secret:      true,
		Description: "SMTP password (set together with the username)",
	},
	{
		Key:         "email_from",
		Env:         EnvFrom,
		Channels:    []string{ChannelEmail},
		Description: "Sender address (required)",
	},
	{
		Key:         "email_to",
		Env:         EnvTo,
		Channels:    []string{ChannelEmail},
		Description: "Recipients separated by ',' or ';' (required)",
	},
	{
		Key:         "email_use_tls",
		Env:         EnvUseTLS,
		Channels:    []string{ChannelEmail},
		Description: "Upgrade the connection with STARTTLS",
		Default:     "true",
	},
	{
		Key:         "email_use_ssl",
		Env:         EnvUseSSL,
		Channels:    []string{ChannelEmail},
		Description: "Connect with implicit TLS",
		Default:     "false",
	},
}

// KeysFor returns the settings read by channel, in documentation order.
func KeysFor(channel string) []KeySchema {
	var keys []KeySchema
	for _, k := range KnownKeys {
		for _, c := range k.Channels {
			if c == channel {
				keys = append(keys, k)
				break
			}
		}
	}
	return keys
}
