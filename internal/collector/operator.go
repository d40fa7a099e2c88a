package collector

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrSessionClosed signals that the operator ended the session (Ctrl+D or
// Ctrl+C). Rows already appended stay on disk.
var ErrSessionClosed = errors.New("session closed")

// Operator answers the interactive prompts of a collect session. Tests
// substitute a scripted implementation.
type Operator interface {
	// Prompt asks for a single line, pre-filled with defaultValue.
	Prompt(label, defaultValue string) (string, error)
	// MultiPrompt collects lines until an empty one; defaults pre-fill the
	// first entries.
	MultiPrompt(label string, defaults []string) ([]string, error)
	// Confirm asks a yes/no question.
	Confirm(label string, defaultYes bool) (bool, error)
	// Notify shows a message to the operator outside any prompt.
	Notify(message string)
}

// ReadlineOperator drives prompts through a readline instance with line
// editing and pre-filled defaults.
type ReadlineOperator struct {
	rl *readline.Instance
}

// NewReadlineOperator opens a readline session on the controlling terminal.
func NewReadlineOperator() (*ReadlineOperator, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("open readline: %w", err)
	}
	return &ReadlineOperator{rl: rl}, nil
}

// Close releases the terminal.
func (o *ReadlineOperator) Close() error {
	return o.rl.Close()
}

func (o *ReadlineOperator) readLine(label, defaultValue string) (string, error) {
	o.rl.SetPrompt(label + ": ")
	line, err := o.rl.ReadlineWithDefault(defaultValue)
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", ErrSessionClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Prompt implements Operator.
func (o *ReadlineOperator) Prompt(label, defaultValue string) (string, error) {
	return o.readLine(label, defaultValue)
}

// MultiPrompt implements Operator.
func (o *ReadlineOperator) MultiPrompt(label string, defaults []string) ([]string, error) {
	var values []string
	for i := 0; ; i++ {
		defaultValue := ""
		if i < len(defaults) {
			defaultValue = defaults[i]
		}
		value, err := o.readLine(fmt.Sprintf("%s %d (empty to finish)", label, i+1), defaultValue)
		if err != nil {
			return values, err
		}
		if value == "" {
			return values, nil
		}
		values = append(values, value)
	}
}

// Confirm implements Operator.
func (o *ReadlineOperator) Confirm(label string, defaultYes bool) (bool, error) {
	suffix := " [y/N]"
	if defaultYes {
		suffix = " [Y/n]"
	}
	for {
		value, err := o.readLine(label+suffix, "")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(value) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			o.Notify("please answer y or n")
		}
	}
}

// Notify implements Operator.
func (o *ReadlineOperator) Notify(message string) {
	fmt.Fprintln(o.rl.Stdout(), message)
}
