package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// SessionSpec is the on-disk description of a TDD evaluation session.
// Generated tests and implementation snapshots are referenced by path,
// relative to the spec file. An iteration may carry a recorded outcome;
// without one the runner adapter executes the tests.
type SessionSpec struct {
	ID         string          `yaml:"id"`
	Task       string          `yaml:"task"`
	Language   string          `yaml:"language"`
	Iterations []IterationSpec `yaml:"iterations"`
}

// IterationSpec describes one iteration's inputs.
type IterationSpec struct {
	Tests          string              `yaml:"tests"`
	Implementation string              `yaml:"implementation"`
	Outcome        *m.ExecutionOutcome `yaml:"outcome,omitempty"`
}

// LoadSessionSpec reads and validates a session spec file.
func LoadSessionSpec(path m.Path) (SessionSpec, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return SessionSpec{}, fmt.Errorf("read session spec: %w", err)
	}

	var spec SessionSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return SessionSpec{}, fmt.Errorf("unmarshal session spec: %w", err)
	}

	if len(spec.Iterations) == 0 {
		return SessionSpec{}, fmt.Errorf("session spec %s has no iterations", path)
	}

	if len(spec.Iterations) > m.MaxIterations {
		return SessionSpec{}, fmt.Errorf("session spec %s has %d iterations, max is %d", path, len(spec.Iterations), m.MaxIterations)
	}

	if spec.ID == "" {
		base := filepath.Base(string(path))
		spec.ID = base[:len(base)-len(filepath.Ext(base))]
	}

	// Referenced files resolve relative to the spec location.
	dir := filepath.Dir(string(path))
	for i := range spec.Iterations {
		spec.Iterations[i].Tests = resolve(dir, spec.Iterations[i].Tests)
		spec.Iterations[i].Implementation = resolve(dir, spec.Iterations[i].Implementation)
	}

	return spec, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}
