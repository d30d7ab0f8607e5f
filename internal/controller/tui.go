package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2)

	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output     io.Writer
	iterations []m.IterationRecord
	progress   progress.Model
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{
		output:   output,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Start initializes the UI and prints the banner.
func (p *TUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(p.output, "%s\n\n", headerStyle.Render("Testgrade - Test Quality Assessment"))

	return err
}

// Close finalizes the UI.
func (p *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op, programs run inside the
// display methods).
func (p *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayReports shows quality reports; large lists become a scrollable
// Bubble Tea program, small ones are printed directly.
func (p *TUI) DisplayReports(ctx context.Context, entries []m.ReportEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := make([]m.ReportEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	model := newReportListModel(sorted)

	// Get initial terminal size
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	// If list is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayIterationStart shows a progress bar across the iteration limit.
func (p *TUI) DisplayIterationStart(ctx context.Context, sessionID string, iteration int) {
	if err := ctx.Err(); err != nil {
		return
	}

	bar := p.progress.ViewAs(float64(iteration-1) / float64(m.MaxIterations))
	_, _ = fmt.Fprintf(p.output, "%s %s iteration %d/%d\n",
		bar, pathStyle.Render(sessionID), iteration, m.MaxIterations)
}

// DisplayIterationResult shows the outcome of an evaluated iteration.
func (p *TUI) DisplayIterationResult(ctx context.Context, record m.IterationRecord) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.iterations = append(p.iterations, record)

	passStyle := goodStyle
	if record.Outcome.PassedTests < record.Outcome.TotalTests || record.Outcome.TotalTests == 0 {
		passStyle = badStyle
	}

	_, _ = fmt.Fprintf(p.output, "  %s  quality %.2f  score %s\n",
		passStyle.Render(fmt.Sprintf("%d/%d passed", record.Outcome.PassedTests, record.Outcome.TotalTests)),
		record.Report.Overall,
		scoreStyle(record.Score).Render(fmt.Sprintf("%.2f", record.Score)),
	)

	for _, issue := range record.Issues {
		_, _ = fmt.Fprintf(p.output, "  %s\n", faintStyle.Render("issue: "+issue))
	}
}

// DisplaySessionVerdict renders the final progress bar and verdict.
func (p *TUI) DisplaySessionVerdict(ctx context.Context, session *m.Session, finalScore float64, accepted bool) {
	if err := ctx.Err(); err != nil {
		return
	}

	bar := p.progress.ViewAs(float64(len(session.Iterations)) / float64(m.MaxIterations))

	verdict := badStyle.Render("rejected")
	if accepted {
		verdict = goodStyle.Render("accepted")
	}

	_, _ = fmt.Fprintf(p.output, "\n%s\nSession %s %s: final score %s (%s)\n",
		bar,
		pathStyle.Render(session.ID),
		session.State,
		scoreStyle(finalScore).Render(fmt.Sprintf("%.2f", finalScore)),
		verdict,
	)
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 0.7:
		return goodStyle
	case score < 0.4:
		return badStyle
	default:
		return lipgloss.NewStyle()
	}
}

// reportListModel represents the Bubble Tea model for a scrollable list
// of per-file quality reports.
type reportListModel struct {
	entries  []m.ReportEntry
	height   int
	width    int
	offset   int
	quitting bool
}

func newReportListModel(entries []m.ReportEntry) reportListModel {
	return reportListModel{entries: entries}
}

func (rm reportListModel) Init() tea.Cmd {
	return nil
}

func (rm reportListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.height = msg.Height
		rm.width = msg.Width

		return rm, nil

	case tea.KeyMsg:
		return rm.handleKeyPress(msg)
	}

	return rm, nil
}

//nolint:exhaustive // Key handling requires multiple cases for UI navigation
func (rm reportListModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		rm.quitting = true
		return rm, tea.Quit
	default:
		// Handle other key types in the string switch below
	}

	switch msg.String() {
	case "q":
		rm.quitting = true
		return rm, tea.Quit

	case "down", "j":
		rm.offset++

		if max := rm.maxOffset(); rm.offset > max {
			rm.offset = max
		}

		return rm, nil

	case "up", "k":
		rm.offset--
		if rm.offset < 0 {
			rm.offset = 0
		}

		return rm, nil

	case "g", "home":
		rm.offset = 0

		return rm, nil

	case "G", "end":
		rm.offset = rm.maxOffset()

		return rm, nil

	case "d", "pgdown":
		rm.offset += rm.itemsPerPage()

		if max := rm.maxOffset(); rm.offset > max {
			rm.offset = max
		}

		return rm, nil

	case "u", "pgup":
		rm.offset -= rm.itemsPerPage()
		if rm.offset < 0 {
			rm.offset = 0
		}

		return rm, nil
	}

	return rm, nil
}

// itemsPerPage calculates how many report lines fit on screen.
func (rm reportListModel) itemsPerPage() int {
	if rm.height == 0 {
		return 10
	}
	// Reserved lines:
	// - Header: 4 lines
	// - Summary: 2 lines
	// - Footer (pagination + help): 3 lines
	reserved := 9

	available := rm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

func (rm reportListModel) maxOffset() int {
	maxOff := len(rm.entries) - rm.itemsPerPage()
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

func (rm reportListModel) needsPagination() bool {
	return len(rm.entries) > rm.itemsPerPage() && rm.height > 0
}

func (rm reportListModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Testgrade - Quality Reports"))
	b.WriteString("\n\n")

	if len(rm.entries) == 0 {
		b.WriteString("  no reports found\n")
		return b.String()
	}

	rm.renderEntries(&b)

	return b.String()
}

func (rm reportListModel) renderEntries(b *strings.Builder) {
	needsPagination := rm.needsPagination()
	perPage := rm.itemsPerPage()

	start := rm.offset

	end := start + perPage
	if end > len(rm.entries) {
		end = len(rm.entries)
	}

	visible := rm.entries
	if needsPagination {
		visible = rm.entries[start:end]
	}

	sum := 0.0
	for _, entry := range rm.entries {
		sum += entry.Report.Overall
	}

	for _, entry := range visible {
		fmt.Fprintf(b, "  %s %s (%s): %d strength(s), %d weakness(es)\n",
			scoreStyle(entry.Report.Overall).Render(fmt.Sprintf("%.2f", entry.Report.Overall)),
			pathStyle.Render(string(entry.Path)),
			entry.Report.DetectedLanguage,
			len(entry.Report.Strengths),
			len(entry.Report.Weaknesses),
		)
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "  mean score %.2f across %d file(s)\n", sum/float64(len(rm.entries)), len(rm.entries))

	if needsPagination {
		b.WriteString("\n")

		currentPage := (rm.offset / perPage) + 1
		totalPages := (len(rm.entries) + perPage - 1) / perPage
		fmt.Fprintf(b, "  Page %d/%d | Showing %d-%d of %d\n",
			currentPage, totalPages, start+1, end, len(rm.entries))
		b.WriteString("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit\n")
	}
}
