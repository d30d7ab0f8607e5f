// Package controller provides output adapters for displaying assessment
// results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeAssess StartMode = iota
	ModeSession
)

// StartOption is a functional option for the Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithAssessMode sets the UI to batch assessment mode.
func WithAssessMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeAssess
	}
}

// WithSessionMode sets the UI to TDD session mode.
func WithSessionMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeSession
	}
}

// UI defines the interface for displaying assessment progress and
// results. Implementations can use different output methods (simple
// text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context)
	DisplayReports(ctx context.Context, entries []m.ReportEntry) error
	DisplayIterationStart(ctx context.Context, sessionID string, iteration int)
	DisplayIterationResult(ctx context.Context, record m.IterationRecord)
	DisplaySessionVerdict(ctx context.Context, session *m.Session, finalScore float64, accepted bool)
}

// NewUI returns the TUI on interactive terminals and the SimpleUI
// everywhere else (pipes, CI).
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether the file is an interactive terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
