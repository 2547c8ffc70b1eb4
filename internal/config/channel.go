package config

// ChannelConfig is a fully validated channel configuration. Values of this
// type are only handed out after Validate has succeeded.
type ChannelConfig interface {
	// Channel returns the channel name ("bark", "email").
	Channel() string

	// Device returns the machine name shown in the message body.
	Device() string

	// Validate checks the configuration invariants.
	Validate() error

	// Describe returns the destination part of a dry-run plan, one line per entry.
	Describe() []string
}
