package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCommands()
	c.normalizeEncode()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCommands() {
	c.Player.Command = strings.TrimSpace(c.Player.Command)
	if c.Player.Command == "" {
		c.Player.Command = defaultPlayerCommand
	}
	c.Sox.Command = strings.TrimSpace(c.Sox.Command)
	if c.Sox.Command == "" {
		c.Sox.Command = defaultSoxCommand
	}
	c.Sox.FFprobeCommand = strings.TrimSpace(c.Sox.FFprobeCommand)
	if c.Sox.FFprobeCommand == "" {
		c.Sox.FFprobeCommand = defaultFFprobeCommand
	}
}

func (c *Config) normalizeEncode() {
	c.Encode.Format = strings.ToLower(strings.TrimSpace(c.Encode.Format))
	if c.Encode.Format == "" {
		c.Encode.Format = defaultEncodeFormat
	}
	if c.Encode.BitrateKbps == 0 {
		c.Encode.BitrateKbps = defaultBitrateKbps
	}
	if c.Encode.Channels == 0 {
		c.Encode.Channels = defaultChannels
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
