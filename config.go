package mq

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds default queue attributes; Config.Attr turns them into an
// Attr for a caller to pass to Open. Open does not read Config itself: a
// nil attr always gets the package defaults. It is the YAML-loadable
// counterpart to
// the package's built-in DefaultMaxMsgs/DefaultMsgSize constants, following
// the optional-env-path-then-defaults pattern kedacore-keda's
// tests/helper.LoadTestConfig uses for its own YAML config.
type Config struct {
	DefaultMaxMsgs int32 `yaml:"defaultMaxMsgs,omitempty"`
	DefaultMsgSize int32 `yaml:"defaultMsgSize,omitempty"`
}

// Validate rejects a config with a negative size or capacity; zero means
// "use the package default" (see Attr.withDefaults).
func (c Config) Validate() error {
	if c.DefaultMaxMsgs < 0 {
		return fmt.Errorf("mosmq: config: defaultMaxMsgs must not be negative, got %d", c.DefaultMaxMsgs)
	}
	if c.DefaultMsgSize < 0 {
		return fmt.Errorf("mosmq: config: defaultMsgSize must not be negative, got %d", c.DefaultMsgSize)
	}
	return nil
}

// Attr builds an Attr seeded from c's defaults, with flags left zero-valued
// (blocking, no non-blocking bit).
func (c Config) Attr() Attr {
	return Attr{MaxMsgs: c.DefaultMaxMsgs, MsgSize: c.DefaultMsgSize}.withDefaults()
}

// LoadConfig reads and validates a YAML Config from path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("mosmq: config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
