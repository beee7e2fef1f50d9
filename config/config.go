// Package config provides YAML configuration parsing and override merging
// for the hywatch CLI.
//
// Settings come from up to three layers with fixed precedence: an explicit
// override (CLI flag) beats the config file, which beats the built-in
// default. The merge happens exactly once, before polling starts.
//
// Example configuration:
//
//	api_key: ${HYPIXEL_API_KEY}
//	username: Technoblade
//	endpoint: player
//	jmespath: player.karma
//	interval: 300
//	notify: true
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/hywatch/hywatch/internal/hypixel"
)

// Defaults applied during [Resolve].
const (
	DefaultEndpoint = "player"
	DefaultInterval = 300 // seconds
)

// Config is the file representation of hywatch settings. It maps directly
// to the YAML configuration file.
type Config struct {
	// APIKey is the Hypixel API key. Required after merging.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	APIKey string `yaml:"api_key"`

	// Username is the Minecraft username to monitor. Resolved to a UUID
	// at startup unless UUID is also set.
	Username string `yaml:"username"`

	// UUID is the account UUID. When set, no Mojang resolution happens.
	UUID string `yaml:"uuid"`

	// Endpoint is the Hypixel endpoint to poll. Defaults to "player".
	Endpoint string `yaml:"endpoint"`

	// Query is the JMESPath expression extracting the monitored value.
	// Required after merging.
	Query string `yaml:"jmespath"`

	// Interval is the polling interval in seconds. Defaults to 300.
	// Values below 5 are raised to 5 at run time.
	Interval int `yaml:"interval"`

	// Notify enables best-effort desktop notifications on change.
	Notify bool `yaml:"notify"`

	// Profile is the Skyblock profile id, required only for the
	// "skyblock/profile" endpoint.
	Profile string `yaml:"profile"`

	// Params are extra request parameters for endpoints without fixed
	// parameter rules. Values support environment variable substitution.
	Params map[string]string `yaml:"params"`
}

// Overrides carries explicitly supplied settings that take precedence over
// the config file. Zero values mean "not supplied", except the booleans,
// which are tracked separately.
type Overrides struct {
	APIKey   string
	Username string
	UUID     string
	Endpoint string
	Query    string
	Profile  string
	Params   map[string]string

	// Interval is in seconds. IntervalSet distinguishes an explicit zero
	// or default from "not supplied".
	Interval    int
	IntervalSet bool

	// Notify turns desktop notifications on. NotifySet marks it as
	// explicitly supplied.
	Notify    bool
	NotifySet bool
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in api_key and params values are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data and expands environment variables.
// Defaults are not applied here; that happens in [Resolve] so the
// precedence order stays in one place.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.APIKey != "" {
		expanded, err := expandEnvVars(cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("api_key: %w", err)
		}
		cfg.APIKey = expanded
	}
	for k, v := range cfg.Params {
		expanded, err := expandEnvVars(v)
		if err != nil {
			return nil, fmt.Errorf("params[%s]: %w", k, err)
		}
		cfg.Params[k] = expanded
	}

	return &cfg, nil
}

// Resolve merges a file config (may be nil when no file was given) with
// explicit overrides, applies defaults, and validates the result.
//
// Precedence per setting: override, then file, then default. Validation
// covers the required settings (api_key, jmespath) and the endpoint
// parameter rules, so a misconfigured endpoint fails here, before any
// network activity.
func Resolve(file *Config, o Overrides) (*Config, error) {
	merged := Config{}
	if file != nil {
		merged = *file
	}

	if o.APIKey != "" {
		merged.APIKey = o.APIKey
	}
	if o.Username != "" {
		merged.Username = o.Username
	}
	if o.UUID != "" {
		merged.UUID = o.UUID
	}
	if o.Endpoint != "" {
		merged.Endpoint = o.Endpoint
	}
	if o.Query != "" {
		merged.Query = o.Query
	}
	if o.Profile != "" {
		merged.Profile = o.Profile
	}
	if len(o.Params) > 0 {
		merged.Params = o.Params
	}
	if o.IntervalSet {
		merged.Interval = o.Interval
	}
	if o.NotifySet {
		merged.Notify = o.Notify
	}

	if merged.Endpoint == "" {
		merged.Endpoint = DefaultEndpoint
	}
	if merged.Interval == 0 {
		merged.Interval = DefaultInterval
	}

	if err := merged.validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// validate checks the merged settings without any network activity.
func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required (get one from https://api.hypixel.net/)")
	}
	if c.Query == "" {
		return fmt.Errorf("a jmespath expression is required to select the value to monitor")
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval cannot be negative, got %d", c.Interval)
	}

	// exercise the endpoint parameter rules so misconfiguration
	// (e.g. skyblock/profile without a profile id) fails before polling
	identity := hypixel.Identity{
		Username:  c.Username,
		UUID:      c.UUID,
		ProfileID: c.Profile,
	}
	if identity.UUID == "" && identity.Username != "" {
		// the username resolves to a uuid before parameters are built
		identity.UUID = "pending-resolution"
	}
	if _, err := hypixel.BuildParams(c.Endpoint, identity, c.Params); err != nil {
		return err
	}

	return nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}
