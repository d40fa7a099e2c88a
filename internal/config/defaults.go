package config

const (
	defaultOutputDir      = "./processed"
	defaultWorkDir        = "~/.local/share/lectern/work"
	defaultLogDir         = "~/.local/share/lectern/logs"
	defaultPlayerCommand  = "vlc"
	defaultSoxCommand     = "sox"
	defaultFFprobeCommand = "ffprobe"
	defaultEncodeFormat   = "mp3"
	defaultBitrateKbps    = 128
	defaultChannels       = 1
	defaultFadeInSeconds  = 1.0
	defaultFadeOutSeconds = 2.0
	defaultGenre          = "Speech"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			WorkDir:   defaultWorkDir,
			LogDir:    defaultLogDir,
		},
		Player: Player{
			Command: defaultPlayerCommand,
		},
		Sox: Sox{
			Command:        defaultSoxCommand,
			FFprobeCommand: defaultFFprobeCommand,
		},
		Encode: Encode{
			Format:         defaultEncodeFormat,
			BitrateKbps:    defaultBitrateKbps,
			Channels:       defaultChannels,
			FadeInSeconds:  defaultFadeInSeconds,
			FadeOutSeconds: defaultFadeOutSeconds,
		},
		Tags: Tags{
			Genre: defaultGenre,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
