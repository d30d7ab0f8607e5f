package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

const (
	reportsFileName = "reports.yaml"
	sessionFileName = "session.yaml"
)

// ReportStore persists quality reports and session records. The YAML
// shapes are stable; dashboards consume them directly.
type ReportStore interface {
	SaveReports(dir m.Path, entries []m.ReportEntry) error
	LoadReports(dir m.Path) ([]m.ReportEntry, error)
	SaveSession(dir m.Path, session *m.Session) error
}

// LocalReportStore keeps reports as YAML files under a reports directory.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveReports implements ReportStore.
func (s *LocalReportStore) SaveReports(dir m.Path, entries []m.ReportEntry) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal reports: %w", err)
	}

	path := filepath.Join(string(dir), reportsFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		slog.Error("failed to write reports", "path", path, "error", err)
		return fmt.Errorf("write reports: %w", err)
	}

	slog.Debug("saved reports", "path", path, "count", len(entries))

	return nil
}

// LoadReports implements ReportStore.
func (s *LocalReportStore) LoadReports(dir m.Path) ([]m.ReportEntry, error) {
	path := filepath.Join(string(dir), reportsFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}

	var entries []m.ReportEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal reports: %w", err)
	}

	return entries, nil
}

// SaveSession implements ReportStore.
func (s *LocalReportStore) SaveSession(dir m.Path, session *m.Session) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	path := filepath.Join(string(dir), session.ID+"-"+sessionFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		slog.Error("failed to write session", "path", path, "error", err)
		return fmt.Errorf("write session: %w", err)
	}

	slog.Debug("saved session", "path", path, "iterations", len(session.Iterations))

	return nil
}
