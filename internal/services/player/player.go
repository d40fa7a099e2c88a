package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Session is a running preview that can be stopped.
type Session interface {
	Stop() error
}

// Previewer starts playback of an audio file.
type Previewer interface {
	Preview(ctx context.Context, path string) (Session, error)
}

// Client launches the configured player binary with output discarded.
type Client struct {
	binary string
	args   []string
}

// New constructs a player client.
func New(binary string, args []string) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("player binary required")
	}
	return &Client{binary: binary, args: append([]string{}, args...)}, nil
}

// Preview starts the player against path. The returned session terminates
// the subprocess; the player's own exit (operator closed it) is also fine.
func (c *Client) Preview(ctx context.Context, path string) (Session, error) {
	args := append(append([]string{}, c.args...), path)
	cmd := exec.CommandContext(ctx, c.binary, args...) //nolint:gosec
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start player %s: %w", c.binary, err)
	}
	return &session{cmd: cmd}, nil
}

type session struct {
	cmd *exec.Cmd
}

func (s *session) Stop() error {
	if s.cmd.Process == nil {
		return nil
	}
	if err := s.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	// Reap the process; a non-zero exit after kill is expected.
	_ = s.cmd.Wait()
	return nil
}
