package config

import (
	"os"
	"path/filepath"
	"strconv"

	"droidclip/pkg/errors"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMethod    = "auto"
	DefaultPort      = 8080
	DefaultAuthority = "com.droidrun.portal"
)

// Config holds the complete droidclip configuration.
type Config struct {
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Bridge    BridgeConfig    `yaml:"bridge"`
}

// ClipboardConfig selects the transport and addresses the portal app.
type ClipboardConfig struct {
	Method    string `yaml:"method"`
	Port      int    `yaml:"port"`
	Authority string `yaml:"authority"`
}

// BridgeConfig locates the device bridge binary and picks a device.
type BridgeConfig struct {
	Path   string `yaml:"path,omitempty"`
	Serial string `yaml:"serial,omitempty"`
}

// Load loads the configuration file, falling back to defaults when the
// file does not exist. Environment variables override file values.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeGeneral, "failed to get config path", err)
	}
	return loadFromPath(configPath)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "droidclip", "config.yaml"), nil
}

func loadFromPath(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigError("failed to parse config file: " + err.Error())
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.NewWithError(errors.ExitCodeGeneral, "failed to read config file", err)
	}

	applyEnvironmentOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv("DROIDCLIP_METHOD"); v != "" {
		cfg.Clipboard.Method = v
	}
	if v := os.Getenv("DROIDCLIP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Clipboard.Port = port
		}
	}
	if v := os.Getenv("DROIDCLIP_AUTHORITY"); v != "" {
		cfg.Clipboard.Authority = v
	}
	// ANDROID_SERIAL is adb's own device-selection convention.
	if v := os.Getenv("ANDROID_SERIAL"); v != "" {
		cfg.Bridge.Serial = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Clipboard.Method == "" {
		cfg.Clipboard.Method = DefaultMethod
	}
	if cfg.Clipboard.Port == 0 {
		cfg.Clipboard.Port = DefaultPort
	}
	if cfg.Clipboard.Authority == "" {
		cfg.Clipboard.Authority = DefaultAuthority
	}
}

// Default returns a configuration populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Clipboard: ClipboardConfig{
			Method:    DefaultMethod,
			Port:      DefaultPort,
			Authority: DefaultAuthority,
		},
	}
}

// Validate checks field values that would otherwise fail deep inside a
// transport call.
func (c *Config) Validate() error {
	switch c.Clipboard.Method {
	case "auto", "http", "adb":
	default:
		return errors.ConfigError("invalid clipboard method '" + c.Clipboard.Method + "' (expected auto, http, or adb)")
	}
	if c.Clipboard.Port <= 0 || c.Clipboard.Port > 65535 {
		return errors.ConfigError("invalid clipboard port " + strconv.Itoa(c.Clipboard.Port))
	}
	if c.Clipboard.Authority == "" {
		return errors.ConfigError("clipboard authority must not be empty")
	}
	return nil
}

// Save saves the configuration to file
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.NewWithError(errors.ExitCodeGeneral, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeGeneral, "failed to marshal config", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.NewWithError(errors.ExitCodeGeneral, "failed to write config file", err)
	}

	return nil
}
