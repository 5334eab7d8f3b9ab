package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Gurux/gxextron-go"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of the example.
type Config struct {
	Host       string        `yaml:"host"`
	Port       int           `yaml:"port"`
	Password   string        `yaml:"password"`
	DeviceType string        `yaml:"device_type"` // surround_sound_processor, hdmi_switcher
	Login      bool          `yaml:"login"`       // answer the password prompt
	Trace      string        `yaml:"trace"`
	Language   string        `yaml:"language"`
	Timeouts   TimeoutConfig `yaml:"timeouts"`
	Retry      *RetryConfig  `yaml:"retry,omitempty"`
}

// TimeoutConfig contains timeouts in milliseconds. Zero keeps the default.
type TimeoutConfig struct {
	DialMS           int `yaml:"dial_ms"`
	AuthenticationMS int `yaml:"authentication_ms"`
	CommandMS        int `yaml:"command_ms"`
}

// RetryConfig overrides the retry policy.
type RetryConfig struct {
	Attempts int      `yaml:"attempts"`
	DelayMS  int      `yaml:"delay_ms"`
	Codes    []string `yaml:"codes"`
}

// loadConfig reads and parses a YAML configuration file.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DeviceType == "" {
		cfg.DeviceType = gxextron.DeviceTypeUnknown.String()
	}
	if _, err := gxextron.DeviceTypeParse(cfg.DeviceType); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// apply copies the policy values to the client.
func (c *Config) apply(d *gxextron.GXExtron) {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	if c.Timeouts.DialMS > 0 {
		d.SetDialTimeout(ms(c.Timeouts.DialMS))
	}
	if c.Timeouts.AuthenticationMS > 0 {
		d.SetAuthenticationTimeout(ms(c.Timeouts.AuthenticationMS))
	}
	if c.Timeouts.CommandMS > 0 {
		d.SetCommandTimeout(ms(c.Timeouts.CommandMS))
	}
	if c.Retry != nil {
		p := gxextron.DefaultRetryPolicy()
		p.Attempts = c.Retry.Attempts
		p.Delay = ms(c.Retry.DelayMS)
		if len(c.Retry.Codes) != 0 {
			p.RetryableCodes = c.Retry.Codes
		}
		d.SetRetryPolicy(p)
	}
	if c.Login {
		d.SetAuthenticator(gxextron.PasswordLogin{})
	}
}
