package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// Debounce is the quiet period after the last file change before a
	// refresh runs.
	Debounce time.Duration `mapstructure:"debounce"`
	// PollInterval is the refresh period when no file watcher is available.
	PollInterval time.Duration `mapstructure:"poll_interval"`
	// FlashTimeout is how long status messages stay visible.
	FlashTimeout time.Duration `mapstructure:"flash_timeout"`
	// BusyTimeout and IdleTimeout bound the wait between loop ticks while a
	// refresh is pending and otherwise.
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	// ForcePolling skips the file watcher entirely.
	ForcePolling bool `mapstructure:"force_polling"`
	// Mouse enables wheel scrolling and click selection.
	Mouse bool `mapstructure:"mouse"`
	// Icons shows file type icons (needs a Nerd Font).
	Icons bool `mapstructure:"icons"`
	// LogFile receives the debug log. Empty disables logging.
	LogFile string `mapstructure:"log_file"`

	Keys KeyBindings `mapstructure:"keys"`
}

// Load reads configuration from file (when non-empty) or from
// $XDG_CONFIG_HOME/bgs/config.yaml, ~/.config/bgs/config.yaml or
// ./config.yaml. BGS_* environment variables override file values, with
// nested keys joined by "_" (BGS_KEYS_QUIT).
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(configDirectory())
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("BGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine unless it was named explicitly.
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

func (c *Config) validate() error {
	durations := []struct {
		key string
		val time.Duration
	}{
		{"debounce", c.Debounce},
		{"poll_interval", c.PollInterval},
		{"flash_timeout", c.FlashTimeout},
		{"busy_timeout", c.BusyTimeout},
		{"idle_timeout", c.IdleTimeout},
	}
	for _, d := range durations {
		if d.val <= 0 {
			return fmt.Errorf("config: %s must be positive, got %s", d.key, d.val)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debounce", "150ms")
	v.SetDefault("poll_interval", "2s")
	v.SetDefault("flash_timeout", "3s")
	v.SetDefault("busy_timeout", "10ms")
	v.SetDefault("idle_timeout", "100ms")
	v.SetDefault("force_polling", false)
	v.SetDefault("mouse", true)
	v.SetDefault("icons", false)
	v.SetDefault("log_file", "")
	setKeyDefaults(v)
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bgs")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bgs")
}
