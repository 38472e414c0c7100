package git

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"sync"
)

// CommandRunner executes external commands.
// The git Context runs every git invocation through a CommandRunner so tests
// can substitute canned output.
type CommandRunner interface {
	// Run executes name with args in workDir and returns trimmed stdout.
	// On failure it still returns whatever stdout was produced.
	Run(workDir string, name string, args ...string) (string, error)
}

// CommandError describes a failed command.
type CommandError struct {
	Command  string   // Executable name
	Args     []string // Arguments
	Output   string   // Combined stderr/stdout of the failed command
	ExitCode int      // Process exit code (-1 if the process never ran)
	Err      error    // Underlying error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return e.Output
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "command failed"
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCodeOf returns the exit code carried by err, or -1.
func ExitCodeOf(err error) int {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Env []string // Extra environment entries appended to the process env
}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements CommandRunner.
func (r *ExecRunner) Run(workDir string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = workDir
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = out
		}
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return out, &CommandError{
			Command:  name,
			Args:     args,
			Output:   output,
			ExitCode: exitCode,
			Err:      err,
		}
	}
	return out, nil
}

// MockResponse is a canned command result.
type MockResponse struct {
	Stdout string
	Err    error
}

// MockCall records one invocation of a mock runner.
type MockCall struct {
	WorkDir string
	Command string
	Args    []string
}

// MockRunner returns canned responses keyed by command line.
// Lookup order: exact "name args...", then "name", then "*", then DefaultResponse.
type MockRunner struct {
	Responses       map[string]MockResponse
	DefaultResponse MockResponse
	Calls           []MockCall

	mu sync.Mutex
}

// NewMockRunner creates an empty MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{Responses: make(map[string]MockResponse)}
}

// MockExpectation binds a response to a command line.
type MockExpectation struct {
	runner *MockRunner
	key    string
}

// OnCommand starts an expectation for an exact command line.
func (m *MockRunner) OnCommand(name string, args ...string) *MockExpectation {
	return &MockExpectation{runner: m, key: commandKey(name, args)}
}

// OnAnyCommand starts a wildcard expectation.
func (m *MockRunner) OnAnyCommand() *MockExpectation {
	return &MockExpectation{runner: m, key: "*"}
}

// Return sets the response for the expectation.
func (e *MockExpectation) Return(stdout string, err error) {
	e.runner.mu.Lock()
	defer e.runner.mu.Unlock()
	e.runner.Responses[e.key] = MockResponse{Stdout: stdout, Err: err}
}

// Run implements CommandRunner.
func (m *MockRunner) Run(workDir string, name string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{WorkDir: workDir, Command: name, Args: args})

	for _, key := range []string{commandKey(name, args), name, "*"} {
		if resp, ok := m.Responses[key]; ok {
			return resp.Stdout, resp.Err
		}
	}
	return m.DefaultResponse.Stdout, m.DefaultResponse.Err
}

// WasCalled reports whether a call started with name and args.
func (m *MockRunner) WasCalled(name string, args ...string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, call := range m.Calls {
		if call.Command != name || len(call.Args) < len(args) {
			continue
		}
		if argsMatch(call.Args[:len(args)], args) {
			return true
		}
	}
	return false
}

// CallCount returns how many calls used the command name.
func (m *MockRunner) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, call := range m.Calls {
		if call.Command == name {
			count++
		}
	}
	return count
}

// SequentialMockRunner returns queued responses in call order.
// Calls beyond the queue return empty output and no error.
type SequentialMockRunner struct {
	responses []MockResponse
	Calls     []MockCall

	mu sync.Mutex
}

// NewSequentialMockRunner creates an empty SequentialMockRunner.
func NewSequentialMockRunner() *SequentialMockRunner {
	return &SequentialMockRunner{}
}

// AddOutput queues a response.
func (m *SequentialMockRunner) AddOutput(stdout string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, MockResponse{Stdout: stdout, Err: err})
}

// AddExitCode queues a failed response with the given exit code.
func (m *SequentialMockRunner) AddExitCode(stdout string, code int) {
	m.AddOutput(stdout, &CommandError{Command: "git", Output: stdout, ExitCode: code})
}

// Run implements CommandRunner.
func (m *SequentialMockRunner) Run(workDir string, name string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{WorkDir: workDir, Command: name, Args: args})
	idx := len(m.Calls) - 1
	if idx >= len(m.responses) {
		return "", nil
	}
	resp := m.responses[idx]
	return resp.Stdout, resp.Err
}

// Args returns the arguments of the i-th call.
func (m *SequentialMockRunner) Args(i int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.Calls) {
		return nil
	}
	return m.Calls[i].Args
}

func commandKey(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

func argsMatch(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i := range actual {
		if actual[i] != expected[i] {
			return false
		}
	}
	return true
}
