package testsupport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// StubExecutor stands in for a real SoX binary. Each invocation is recorded
// and the operation's output file is created so later pipeline stages can
// proceed. Populate FailMatch to make invocations containing that argument
// substring fail.
type StubExecutor struct {
	mu        sync.Mutex
	calls     [][]string
	FailMatch string
}

// Run records the invocation and fabricates the output file.
func (s *StubExecutor) Run(_ context.Context, _ string, args []string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, append([]string(nil), args...))
	s.mu.Unlock()

	if s.FailMatch != "" {
		for _, arg := range args {
			if strings.Contains(arg, s.FailMatch) {
				return "simulated tool failure", errors.New("exit status 2")
			}
		}
	}

	// The output file is the last path-like argument of a sox invocation.
	for i := len(args) - 1; i > 0; i-- {
		if strings.ContainsRune(args[i], os.PathSeparator) {
			if err := os.MkdirAll(filepath.Dir(args[i]), 0o755); err != nil {
				return "", err
			}
			if err := os.WriteFile(args[i], []byte("stub-audio"), 0o644); err != nil {
				return "", err
			}
			break
		}
	}
	return "", nil
}

// Calls returns a copy of the recorded invocations.
func (s *StubExecutor) Calls() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.calls))
	copy(out, s.calls)
	return out
}
