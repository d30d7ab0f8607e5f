package adapter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	m "testgrade.dev/pkg/testgrade/internal/model"
)

// RunSpec describes one execution of generated tests against an
// implementation snapshot.
type RunSpec struct {
	TestSource     string
	Implementation string
	Language       m.Language
	Timeout        time.Duration
}

// TestRunnerAdapter abstracts the external test-execution collaborator.
// It is a black box: implementations return pass/fail counts and errors,
// never partial state. Run must return within the spec's timeout; a
// timed-out or failed spawn is an outcome with errors, not a Go error,
// so a session can never get stuck mid-iteration.
type TestRunnerAdapter interface {
	Run(ctx context.Context, spec RunSpec) (m.ExecutionOutcome, error)
}

// LocalTestRunnerAdapter executes tests through per-language subprocess
// commands in a throwaway directory.
type LocalTestRunnerAdapter struct {
	defaultTimeout time.Duration
}

// DefaultRunTimeout bounds a single execution when the spec carries none.
const DefaultRunTimeout = 2 * time.Minute

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter.
func NewLocalTestRunnerAdapter() *LocalTestRunnerAdapter {
	return &LocalTestRunnerAdapter{defaultTimeout: DefaultRunTimeout}
}

// runnerCommand describes how one language's tests are written and run.
type runnerCommand struct {
	testFile string
	implFile string
	argv     []string
}

var runnerCommands = map[m.Language]runnerCommand{
	m.LanguageGo:         {"impl_test.go", "impl.go", []string{"go", "test", "-v", "."}},
	m.LanguagePython:     {"test_impl.py", "impl.py", []string{"python3", "-m", "pytest", "-v", "test_impl.py"}},
	m.LanguageJavaScript: {"impl.test.mjs", "impl.mjs", []string{"node", "--test"}},
	m.LanguageRuby:       {"impl_test.rb", "impl.rb", []string{"ruby", "impl_test.rb"}},
	m.LanguageBash:       {"impl_test.sh", "impl.sh", []string{"bash", "impl_test.sh"}},
}

// passFailPatterns extract pass/fail counts from runner output.
var passFailPatterns = []struct {
	passed *regexp.Regexp
	failed *regexp.Regexp
}{
	{regexp.MustCompile(`(\d+) passed`), regexp.MustCompile(`(\d+) failed`)},
	{regexp.MustCompile(`--- PASS`), regexp.MustCompile(`--- FAIL`)},
	{regexp.MustCompile(`# pass (\d+)`), regexp.MustCompile(`# fail (\d+)`)},
}

// fatalOutput marks failures unrelated to test logic (the implementation
// itself does not build); these abort the enclosing session.
var fatalOutput = regexp.MustCompile(`(?i)build failed|compilation error|SyntaxError|cannot find package|error\[E\d+\]`)

// Run implements TestRunnerAdapter. Every failure mode degrades to an
// ExecutionOutcome with zero passes and a populated error list.
func (a *LocalTestRunnerAdapter) Run(ctx context.Context, spec RunSpec) (m.ExecutionOutcome, error) {
	command, ok := runnerCommands[spec.Language]
	if !ok {
		return m.ExecutionOutcome{
			Errors: []string{"no test runner configured for language " + string(spec.Language)},
		}, nil
	}

	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = a.defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	workDir, err := os.MkdirTemp("", "testgrade-run-*")
	if err != nil {
		return m.ExecutionOutcome{Errors: []string{"workspace: " + err.Error()}}, nil
	}

	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			slog.Error("failed to clean up run workspace", "dir", workDir, "error", err)
		}
	}()

	if err := writeWorkspace(workDir, command, spec); err != nil {
		return m.ExecutionOutcome{Errors: []string{"workspace: " + err.Error()}}, nil
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, command.argv[0], command.argv[1:]...) //nolint:gosec // argv is a fixed table
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	output := stdout.String() + stderr.String()
	outcome := parseOutcome(output)
	outcome.DurationSeconds = time.Since(start).Seconds()

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		outcome.PassedTests = 0
		outcome.Errors = append(outcome.Errors, "test execution timed out after "+timeout.String())
	case runErr != nil && outcome.TotalTests == 0:
		outcome.Errors = append(outcome.Errors, runErr.Error())
	}

	if fatalOutput.MatchString(output) {
		outcome.Fatal = true
	}

	slog.Debug("test run finished",
		"language", spec.Language,
		"passed", outcome.PassedTests,
		"total", outcome.TotalTests,
		"fatal", outcome.Fatal,
		"duration", outcome.DurationSeconds,
	)

	return outcome, nil
}

func writeWorkspace(dir string, command runnerCommand, spec RunSpec) error {
	if spec.Implementation != "" {
		implPath := filepath.Join(dir, command.implFile)
		if err := os.WriteFile(implPath, []byte(spec.Implementation), 0o600); err != nil {
			return err
		}
	}

	testPath := filepath.Join(dir, command.testFile)

	return os.WriteFile(testPath, []byte(spec.TestSource), 0o600)
}

// parseOutcome scrapes pass/fail counts out of runner output using the
// first pattern pair that matches anything.
func parseOutcome(output string) m.ExecutionOutcome {
	for _, patterns := range passFailPatterns {
		passed := countOrLen(patterns.passed, output)
		failed := countOrLen(patterns.failed, output)

		if passed == 0 && failed == 0 {
			continue
		}

		outcome := m.ExecutionOutcome{
			TotalTests:  passed + failed,
			PassedTests: passed,
		}

		for _, line := range failureLines(output) {
			outcome.Errors = append(outcome.Errors, line)
		}

		return outcome
	}

	return m.ExecutionOutcome{}
}

// countOrLen returns the captured count when the pattern has a capture
// group, otherwise the number of matches.
func countOrLen(re *regexp.Regexp, output string) int {
	matches := re.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return 0
	}

	if len(matches[0]) > 1 {
		n, err := strconv.Atoi(matches[0][1])
		if err == nil {
			return n
		}
	}

	return len(matches)
}

var failureLine = regexp.MustCompile(`(?m)^.*(?:FAIL|FAILED|Error|error:).*$`)

func failureLines(output string) []string {
	lines := failureLine.FindAllString(output, -1)
	if len(lines) > 8 {
		lines = lines[:8]
	}

	return lines
}
