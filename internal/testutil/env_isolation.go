package testutil

import (
	"os"
	"strings"
	"testing"
)

// IsolateEnv removes every environment variable starting with prefix for
// the duration of the test, then applies vars. The original values are
// restored by t.Setenv's cleanup. Tests using it cannot run in parallel.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    testutil.IsolateEnv(t, "CODEX_", map[string]string{"CODEX_MACHINE_NAME": "devbox"})
//	    // only CODEX_MACHINE_NAME is visible
//	}
func IsolateEnv(t *testing.T, prefix string, vars map[string]string) {
	t.Helper()

	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, prefix) {
			t.Setenv(name, "")
			if err := os.Unsetenv(name); err != nil {
				t.Fatalf("failed to unset %s: %v", name, err)
			}
		}
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}
