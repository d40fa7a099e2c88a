package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncode(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEncode() error {
	if c.Encode.Format != "mp3" {
		return fmt.Errorf("encode.format: unsupported format %q (only mp3 is supported)", c.Encode.Format)
	}
	if c.Encode.BitrateKbps < 32 || c.Encode.BitrateKbps > 320 {
		return fmt.Errorf("encode.bitrate_kbps must be between 32 and 320, got %d", c.Encode.BitrateKbps)
	}
	if c.Encode.Channels != 1 && c.Encode.Channels != 2 {
		return fmt.Errorf("encode.channels must be 1 or 2, got %d", c.Encode.Channels)
	}
	if c.Encode.FadeInSeconds < 0 || c.Encode.FadeOutSeconds < 0 {
		return errors.New("encode fade durations must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
