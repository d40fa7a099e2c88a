package sox

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"lectern/internal/metadata"
)

// Executor abstracts command execution for testability. Run returns the
// tool's combined output for diagnostics.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (string, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// CutSettings shape the cut step.
type CutSettings struct {
	Channels       int
	FadeInSeconds  float64
	FadeOutSeconds float64
}

// Client wraps SoX CLI interactions.
type Client struct {
	binary string
	exec   Executor
}

// New constructs a SoX client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("sox binary required")
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Cut extracts [segment.Start, segment.End) from input into output, downmixing
// to the configured channel count and fading the edges.
func (c *Client) Cut(ctx context.Context, input, output string, segment metadata.Segment, settings CutSettings) error {
	if segment.Start >= segment.End {
		return fmt.Errorf("sox cut: segment %s is empty", segment)
	}
	return c.run(ctx, "cut", cutArgs(input, output, segment, settings))
}

// Filter applies the speech-intelligibility chain (normalization, band
// limiting, compression, presence EQ) to input, writing output.
func (c *Client) Filter(ctx context.Context, input, output string) error {
	return c.run(ctx, "filter", filterArgs(input, output))
}

// Transcode converts input to MP3 at the given bitrate.
func (c *Client) Transcode(ctx context.Context, input, output string, bitrateKbps int) error {
	if bitrateKbps <= 0 {
		return fmt.Errorf("sox transcode: invalid bitrate %d", bitrateKbps)
	}
	return c.run(ctx, "transcode", transcodeArgs(input, output, bitrateKbps))
}

func (c *Client) run(ctx context.Context, operation string, args []string) error {
	output, err := c.exec.Run(ctx, c.binary, args)
	if err != nil {
		detail := strings.TrimSpace(output)
		if detail != "" {
			return fmt.Errorf("sox %s: %w: %s", operation, err, detail)
		}
		return fmt.Errorf("sox %s: %w", operation, err)
	}
	return nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	return string(output), err
}
