package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Format Format `json:"format"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// Runner abstracts command execution for testability.
type Runner func(ctx context.Context, binary string, args []string) ([]byte, error)

func defaultRunner(ctx context.Context, binary string, args []string) ([]byte, error) {
	return exec.CommandContext(ctx, binary, args...).CombinedOutput()
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	return inspect(ctx, binary, path, defaultRunner)
}

// InspectWith is Inspect with an injected runner, used by tests.
func InspectWith(ctx context.Context, binary string, path string, run Runner) (Result, error) {
	if run == nil {
		run = defaultRunner
	}
	return inspect(ctx, binary, path, run)
}

func inspect(ctx context.Context, binary string, path string, run Runner) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	output, err := run(ctx, binary, []string{"-v", "error", "-hide_banner", "-show_format", "-of", "json", "--", path})
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// DurationSeconds returns the container duration in seconds, or 0 when
// unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// DurationWholeSeconds rounds the container duration up to whole seconds,
// matching the granularity of collected timestamps.
func (r Result) DurationWholeSeconds() int {
	duration := r.DurationSeconds()
	if math.IsNaN(duration) || duration <= 0 {
		return 0
	}
	return int(math.Ceil(duration))
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
