// Package config loads, validates, and normalizes lectern's TOML
// configuration.
//
// Configuration sections by subsystem:
//   - Paths: output, scratch, and log directories
//   - Player: preview playback command for collect sessions
//   - Sox: external audio tool commands (sox, ffprobe)
//   - Encode: target format, bitrate, channel count, segment fades
//   - Tags: default album/genre tag values
//   - Logging: log format and level
//
// Load resolves the config file (explicit flag, then
// ~/.config/lectern/config.toml, then ./lectern.toml), applies defaults for
// anything unset, expands ~ in path fields, and validates the result.
package config
