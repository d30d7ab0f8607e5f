package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayReports prints an overview table of quality reports. A single
// entry additionally gets a per-metric breakdown.
func (s *SimpleUI) DisplayReports(ctx context.Context, entries []m.ReportEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := make([]m.ReportEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	s.printf("\n%s", renderOverviewTable(sorted))

	if len(sorted) == 1 {
		s.printf("\n%s", renderMetricTable(sorted[0].Report))
		s.printRemarks(sorted[0].Report)
	}

	return nil
}

func renderOverviewTable(entries []m.ReportEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Language", "Overall", "Strengths", "Weaknesses"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	sum := 0.0

	for _, entry := range entries {
		table.Append([]string{
			string(entry.Path),
			string(entry.Report.DetectedLanguage),
			fmt.Sprintf("%.2f", entry.Report.Overall),
			fmt.Sprintf("%d", len(entry.Report.Strengths)),
			fmt.Sprintf("%d", len(entry.Report.Weaknesses)),
		})

		sum += entry.Report.Overall
	}

	mean := 0.0
	if len(entries) > 0 {
		mean = sum / float64(len(entries))
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(entries)),
		"",
		fmt.Sprintf("%.2f", mean),
		"",
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func renderMetricTable(report m.QualityReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Metric", "Score"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, name := range m.MetricNames() {
		table.Append([]string{string(name), fmt.Sprintf("%.2f", report.MetricScore(name))})
	}

	table.SetFooter([]string{"Overall", fmt.Sprintf("%.2f", report.Overall)})
	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printRemarks(report m.QualityReport) {
	if len(report.Strengths) > 0 {
		s.printf("Strengths: %s\n", strings.Join(report.Strengths, "; "))
	}

	if len(report.Weaknesses) > 0 {
		s.printf("Weaknesses: %s\n", strings.Join(report.Weaknesses, "; "))
	}
}

// DisplayIterationStart shows info about the iteration being evaluated.
func (s *SimpleUI) DisplayIterationStart(ctx context.Context, sessionID string, iteration int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Session %s: evaluating iteration %d/%d\n", sessionID, iteration, m.MaxIterations)
}

// DisplayIterationResult shows the outcome of an evaluated iteration.
func (s *SimpleUI) DisplayIterationResult(ctx context.Context, record m.IterationRecord) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Iteration %d: %d/%d tests passed, quality %.2f, score %.2f\n",
		record.Number,
		record.Outcome.PassedTests,
		record.Outcome.TotalTests,
		record.Report.Overall,
		record.Score,
	)

	for _, issue := range record.Issues {
		s.printf("  issue: %s\n", issue)
	}
}

// DisplaySessionVerdict prints the final session score and verdict.
func (s *SimpleUI) DisplaySessionVerdict(ctx context.Context, session *m.Session, finalScore float64, accepted bool) {
	if err := ctx.Err(); err != nil {
		return
	}

	verdict := "rejected"
	if accepted {
		verdict = "accepted"
	}

	s.printf("Session %s %s after %d iteration(s): final score %.2f (%s)\n",
		session.ID, session.State, len(session.Iterations), finalScore, verdict)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
