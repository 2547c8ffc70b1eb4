package errors

// MissingSetting reports a required setting that is absent or blank.
func MissingSetting(name string) *CLIError {
	return NewConfigError("Missing %s.", name)
}

// InvalidSetting reports a setting whose value cannot be parsed.
func InvalidSetting(name, value string) *CLIError {
	return NewConfigError("Invalid %s value: %s", name, value)
}

// ConflictingSettings reports two settings that must not both be enabled.
func ConflictingSettings(a, b string) *CLIError {
	return NewConfigError("Set only one of %s or %s.", a, b)
}

// EmptyFlag reports a required flag whose value trims to nothing.
func EmptyFlag(flag string) *CLIError {
	return NewValidationError("--%s must be non-empty.", flag)
}
