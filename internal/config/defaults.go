package config

// GetDefaults returns the default values of every setting that has one,
// keyed by config key.
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{})
	for _, k := range KnownKeys {
		if k.Default != nil {
			defaults[k.Key] = k.Default
		}
	}
	return defaults
}
