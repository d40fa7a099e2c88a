package sox

import (
	"strconv"

	"lectern/internal/metadata"
)

// The filter constants come from the speech mastering chain this tool has
// always applied: normalize to -24 dB, band-limit to the voice range,
// compress, then boost presence (3 kHz) and warmth (280 Hz).
func filterArgs(input, output string) []string {
	return []string{
		input, output,
		"norm", "-24",
		"highpass", "100",
		"lowpass", "10000",
		"compand", "0.005,0.12", "6:-90,-90,-70,-55,-50,-35,-32,-32,-24,-24,0,-8",
		"equalizer", "3000", "1000h", "3",
		"equalizer", "280", "120h", "3",
	}
}

func cutArgs(input, output string, segment metadata.Segment, settings CutSettings) []string {
	args := []string{input, output}
	if settings.Channels > 0 {
		args = append(args, "channels", strconv.Itoa(settings.Channels))
	}
	args = append(args,
		"trim",
		strconv.Itoa(segment.Start),
		strconv.Itoa(segment.Duration()),
	)
	if settings.FadeInSeconds > 0 || settings.FadeOutSeconds > 0 {
		// fade t <in> 0 <out>: stop position 0 means the end of audio.
		args = append(args,
			"fade", "t",
			formatSeconds(settings.FadeInSeconds),
			"0",
			formatSeconds(settings.FadeOutSeconds),
		)
	}
	return args
}

func transcodeArgs(input, output string, bitrateKbps int) []string {
	return []string{input, "-C", strconv.Itoa(bitrateKbps), output}
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
