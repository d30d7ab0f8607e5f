package adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

func TestSaveAndLoadReports(t *testing.T) {
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))
	store := NewLocalReportStore()

	entries := []m.ReportEntry{
		{
			Path: "test_cart.py",
			Report: m.QualityReport{
				Metrics: map[m.MetricName]m.MetricResult{
					m.MetricCompleteness: {Score: 0.9, Evidence: map[string]float64{"test_count": 4}},
				},
				Overall:          0.82,
				Strengths:        []string{"good test coverage"},
				DetectedLanguage: m.LanguagePython,
			},
		},
	}

	require.NoError(t, store.SaveReports(dir, entries))

	loaded, err := store.LoadReports(dir)
	require.NoError(t, err)
	require.Equal(t, entries, loaded)
}

func TestLoadReportsMissingDirFails(t *testing.T) {
	_, err := NewLocalReportStore().LoadReports(m.Path(filepath.Join(t.TempDir(), "missing")))
	require.Error(t, err)
}

func TestSaveSessionUsesSessionID(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalReportStore()

	session := &m.Session{
		ID:         "demo",
		Language:   m.LanguagePython,
		FinalScore: 0.7,
		Iterations: []m.IterationRecord{{Number: 1, Score: 0.7}},
	}

	require.NoError(t, store.SaveSession(m.Path(dir), session))
	require.FileExists(t, filepath.Join(dir, "demo-session.yaml"))
}
