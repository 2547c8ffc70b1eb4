// Package config builds validated channel configurations.
//
// Raw settings are plain strings that can come from anywhere; Load layers
// defaults, an optional config file and CODEX_ environment variables with
// koanf, but tests and other callers may fill BarkSettings or EmailSettings
// directly. NewBarkConfig and NewEmailConfig turn settings into a
// ChannelConfig or fail before any delivery is attempted.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	clierrors "github.com/ariel-frischer/tasknotify/internal/errors"
	"github.com/ariel-frischer/tasknotify/internal/logging"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Source is a layered view of the raw settings.
type Source struct {
	k *koanf.Koanf
}

// Load loads settings from defaults, the optional config file at path and
// the environment.
// Priority: Environment variables > Config file > Defaults
func Load(path string) (*Source, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Configuration, "failed to read environment")
	}

	logging.Log.Debug().Str("config_file", path).Strs("keys", k.Keys()).Msg("settings loaded")
	return &Source{k: k}, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return clierrors.NewConfigError("config file not found: %s", path)
		}
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "cannot access config file")
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		parser = json.Parser()
	case ".yml", ".yaml":
		parser = yamlParser{}
	default:
		return clierrors.NewConfigError("unsupported config file format: %s (use .json, .yml or .yaml)", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "failed to load config file")
	}
	return nil
}

// envTransform converts environment variable names to config keys
// Example: CODEX_EMAIL_SMTP_HOST -> email_smtp_host
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// BarkSettings returns the raw Bark settings.
func (s *Source) BarkSettings() (BarkSettings, error) {
	var settings BarkSettings
	if err := s.k.Unmarshal("", &settings); err != nil {
		return settings, clierrors.WrapWithMessage(err, clierrors.Configuration, "failed to read bark settings")
	}
	return settings, nil
}

// EmailSettings returns the raw email settings.
func (s *Source) EmailSettings() (EmailSettings, error) {
	var settings EmailSettings
	if err := s.k.Unmarshal("", &settings); err != nil {
		return settings, clierrors.WrapWithMessage(err, clierrors.Configuration, "failed to read email settings")
	}
	return settings, nil
}

// LogSettings logs the effective settings of channel at debug level.
// Secret values are masked.
func (s *Source) LogSettings(channel string) {
	event := logging.Log.Debug().Str("channel", channel)
	for _, key := range KeysFor(channel) {
		value := s.k.String(key.Key)
		if key.Secret && value != "" {
			value = "****"
		}
		event = event.Str(key.Key, value)
	}
	event.Msg("effective settings")
}
