package cli

// Exit codes for the tasknotify CLI
const (
	// ExitSuccess indicates the notification was sent or the plan printed
	ExitSuccess = 0

	// ExitFailure indicates a validation, configuration or transport failure
	ExitFailure = 1
)

// ExitCode returns the exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
