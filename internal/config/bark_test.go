package config

import (
	"testing"
	"time"

	clierrors "github.com/ariel-frischer/tasknotify/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBarkConfig(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		settings BarkSettings
		timeout  time.Duration
		wantErr  string
		wantURL  string
	}{
		"valid with default base url": {
			settings: BarkSettings{MachineName: "devbox", Key: "abc123"},
			timeout:  10 * time.Second,
			wantURL:  "https://api.day.app/abc123",
		},
		"trailing slash is trimmed": {
			settings: BarkSettings{MachineName: "devbox", Key: "abc123", BaseURL: "https://bark.example.com/"},
			timeout:  time.Second,
			wantURL:  "https://bark.example.com/abc123",
		},
		"reserved characters in key are encoded": {
			settings: BarkSettings{MachineName: "devbox", Key: "a/b c?d#e+f&g", BaseURL: "https://api.day.app"},
			timeout:  time.Second,
			wantURL:  "https://api.day.app/a%2Fb%20c%3Fd%23e%2Bf%26g",
		},
		"missing machine name": {
			settings: BarkSettings{Key: "abc123"},
			timeout:  time.Second,
			wantErr:  "Missing CODEX_MACHINE_NAME.",
		},
		"blank key": {
			settings: BarkSettings{MachineName: "devbox", Key: "   "},
			timeout:  time.Second,
			wantErr:  "Missing CODEX_BARK_KEY.",
		},
		"machine name checked before key": {
			settings: BarkSettings{},
			timeout:  time.Second,
			wantErr:  "Missing CODEX_MACHINE_NAME.",
		},
		"invalid base url": {
			settings: BarkSettings{MachineName: "devbox", Key: "k", BaseURL: "not a url"},
			timeout:  time.Second,
			wantErr:  "Invalid CODEX_BARK_BASE_URL value: not a url",
		},
		"non-http base url": {
			settings: BarkSettings{MachineName: "devbox", Key: "k", BaseURL: "ftp://files.example.com"},
			timeout:  time.Second,
			wantErr:  "Invalid CODEX_BARK_BASE_URL value: ftp://files.example.com",
		},
		"zero timeout": {
			settings: BarkSettings{MachineName: "devbox", Key: "k"},
			timeout:  0,
			wantErr:  "timeout must be positive",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg, err := NewBarkConfig(tt.settings, tt.timeout)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, clierrors.Configuration, clierrors.CategoryOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, cfg.TargetURL())
			assert.Equal(t, []string{"POST " + tt.wantURL}, cfg.Describe())
			assert.Equal(t, ChannelBark, cfg.Channel())
			assert.Equal(t, "devbox", cfg.Device())
			assert.Equal(t, tt.timeout, cfg.Timeout)
		})
	}
}

func TestBarkConfigValidate(t *testing.T) {
	t.Parallel()

	valid := BarkConfig{MachineName: "m", BaseURL: "http://localhost:8080", Key: "k", Timeout: time.Second}
	require.NoError(t, valid.Validate())

	noHost := valid
	noHost.BaseURL = "https://"
	assert.Error(t, noHost.Validate())

	noKey := valid
	noKey.Key = ""
	assert.EqualError(t, noKey.Validate(), "Missing CODEX_BARK_KEY.")

	var _ ChannelConfig = &valid
}
