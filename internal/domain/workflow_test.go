package domain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"testgrade.dev/pkg/testgrade/internal/adapter"
	"testgrade.dev/pkg/testgrade/internal/controller"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

func newBufferUI() (controller.UI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return controller.NewSimpleUI(cmd), &buf
}

func newTestWorkflow(ui controller.UI) Workflow {
	aggregator := NewAggregator()

	return NewWorkflow(
		adapter.NewLocalSampleFSAdapter(),
		adapter.NewLocalTestRunnerAdapter(),
		adapter.NewLocalReportStore(),
		ui,
		aggregator,
		NewEvaluator(aggregator, DefaultEvaluatorConfig()),
		NewCombiner(DefaultCombinerConfig()),
	)
}

func TestWorkflowAssessWritesAndDisplaysReports(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test_cart.py")
	require.NoError(t, os.WriteFile(testFile, []byte(iterationTests), 0o600))

	reportsDir := filepath.Join(dir, "reports")
	ui, buf := newBufferUI()

	err := newTestWorkflow(ui).Assess(context.Background(), AssessArgs{
		Paths:   []m.Path{m.Path(dir)},
		Reports: m.Path(reportsDir),
		Threads: 2,
	})
	require.NoError(t, err)

	entries, err := adapter.NewLocalReportStore().LoadReports(m.Path(reportsDir))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, m.Path(testFile), entries[0].Path)
	require.Equal(t, m.LanguagePython, entries[0].Report.DetectedLanguage)

	require.Contains(t, buf.String(), "test_cart.py")
}

func TestWorkflowAssessNoFilesFails(t *testing.T) {
	ui, _ := newBufferUI()

	err := newTestWorkflow(ui).Assess(context.Background(), AssessArgs{
		Paths: []m.Path{m.Path(t.TempDir())},
	})
	require.Error(t, err)
}

func TestWorkflowRunSessionWithRecordedOutcomes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tests.py"), []byte(iterationTests), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "impl.py"), []byte(iterationImpl), 0o600))

	spec := `id: demo
task: ""
language: python
iterations:
  - tests: tests.py
    implementation: impl.py
    outcome:
      total_tests: 4
      passed_tests: 4
  - tests: tests.py
    implementation: impl.py
    outcome:
      total_tests: 4
      passed_tests: 3
`
	specPath := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o600))

	reportsDir := filepath.Join(dir, "reports")
	ui, buf := newBufferUI()

	err := newTestWorkflow(ui).RunSession(context.Background(), SessionArgs{
		SpecPath:  m.Path(specPath),
		Reports:   m.Path(reportsDir),
		Alignment: -1,
	})
	require.NoError(t, err)

	require.FileExists(t, filepath.Join(reportsDir, "demo-session.yaml"))
	require.Contains(t, buf.String(), "Session demo")
	require.Contains(t, buf.String(), "Iteration 1")
	require.Contains(t, buf.String(), "Iteration 2")
}

func TestWorkflowRunSessionCombinesAlignment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tests.py"), []byte(iterationTests), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "impl.py"), []byte(iterationImpl), 0o600))

	spec := `id: combo
language: python
iterations:
  - tests: tests.py
    implementation: impl.py
    outcome:
      total_tests: 4
      passed_tests: 4
`
	specPath := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o600))

	ui, buf := newBufferUI()

	err := newTestWorkflow(ui).RunSession(context.Background(), SessionArgs{
		SpecPath:  m.Path(specPath),
		Alignment: 1.0,
	})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "final score")
}

func TestWorkflowViewLoadsStoredReports(t *testing.T) {
	reportsDir := m.Path(t.TempDir())
	store := adapter.NewLocalReportStore()

	entries := []m.ReportEntry{{
		Path:   "sample_test.go",
		Report: m.QualityReport{Overall: 0.75, DetectedLanguage: m.LanguageGo},
	}}
	require.NoError(t, store.SaveReports(reportsDir, entries))

	ui, buf := newBufferUI()

	err := newTestWorkflow(ui).View(context.Background(), ViewArgs{Reports: reportsDir})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "sample_test.go")
}

func TestWorkflowViewMissingReportsFails(t *testing.T) {
	ui, _ := newBufferUI()

	err := newTestWorkflow(ui).View(context.Background(), ViewArgs{
		Reports: m.Path(filepath.Join(t.TempDir(), "nope")),
	})
	require.Error(t, err)
}
