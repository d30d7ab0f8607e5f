package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"testgrade.dev/pkg/testgrade/internal/catalog"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// ErrSessionTerminal is returned when advancing a completed or aborted session.
var ErrSessionTerminal = errors.New("session is terminal")

// ErrFatalOutcome is returned when the execution collaborator reported a
// non-recoverable failure and the session was aborted.
var ErrFatalOutcome = errors.New("fatal execution outcome")

// EvaluatorConfig holds the scoring knobs of the iteration evaluator.
// The issue penalty constants have an empirical ceiling, not a derived
// one, so they are configuration rather than literals.
type EvaluatorConfig struct {
	BaseScoreCap        float64
	NeutralBase         float64
	IssuePenaltyPerItem float64
	IssuePenaltyCap     float64
	ScoreFloor          float64
	AcceptThreshold     float64
}

// DefaultEvaluatorConfig returns the standard scoring constants.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		BaseScoreCap:        0.8,
		NeutralBase:         0.4,
		IssuePenaltyPerItem: 0.1,
		IssuePenaltyCap:     0.5,
		ScoreFloor:          0.1,
		AcceptThreshold:     defaultAcceptThreshold,
	}
}

// Evaluator drives one TDD session through its bounded iteration sequence.
// Sessions move Pending -> Running(1..5) -> Complete or Aborted. The
// evaluator is sequential within a session; independent sessions may run
// concurrently, sharing only the read-only pattern catalog.
type Evaluator interface {
	NewSession(id, taskDescription string, language m.Language) *m.Session
	Advance(ctx context.Context, session *m.Session, generatedTests, implementation string, outcome m.ExecutionOutcome) (m.IterationRecord, error)
	Finalize(session *m.Session) (float64, bool)
}

type evaluator struct {
	aggregator Aggregator
	cfg        EvaluatorConfig
}

// NewEvaluator constructs an Evaluator on top of the given aggregator.
func NewEvaluator(aggregator Aggregator, cfg EvaluatorConfig) Evaluator {
	return &evaluator{aggregator: aggregator, cfg: cfg}
}

// NewSession creates a pending session.
func (e *evaluator) NewSession(id, taskDescription string, language m.Language) *m.Session {
	return &m.Session{
		ID:              id,
		TaskDescription: taskDescription,
		Language:        language,
		State:           m.SessionPending,
	}
}

// Advance runs one TDD iteration: replace the implementation snapshot,
// assess the generated tests, fold in the execution outcome and append an
// IterationRecord. A fatal outcome aborts the session with the last good
// iteration score as final; cancellation between iterations aborts while
// retaining every completed record.
func (e *evaluator) Advance(ctx context.Context, session *m.Session, generatedTests, implementation string, outcome m.ExecutionOutcome) (m.IterationRecord, error) {
	if err := ctx.Err(); err != nil {
		e.abort(session)
		return m.IterationRecord{}, err
	}

	if session.State.Terminal() {
		return m.IterationRecord{}, ErrSessionTerminal
	}

	if len(session.Iterations) >= m.MaxIterations {
		return m.IterationRecord{}, fmt.Errorf("session %s already ran %d iterations", session.ID, m.MaxIterations)
	}

	if outcome.Fatal {
		slog.Warn("fatal execution outcome, aborting session", "session", session.ID, "errors", outcome.Errors)
		e.abort(session)

		return m.IterationRecord{}, ErrFatalOutcome
	}

	// The snapshot is replaced wholesale; records stay self-contained.
	session.Implementation = implementation
	session.State = m.SessionRunning

	number := len(session.Iterations) + 1

	report := e.aggregator.Evaluate(m.Sample{
		SourceText:           generatedTests,
		Language:             session.Language,
		TaskDescription:      session.TaskDescription,
		ImplementationSource: implementation,
	})

	issues := detectIssues(number, outcome, report, generatedTests)

	base := e.cfg.NeutralBase
	if outcome.TotalTests > 0 {
		base = math.Min(e.cfg.BaseScoreCap, float64(outcome.PassedTests)/float64(outcome.TotalTests))
	}

	penalty := math.Min(e.cfg.IssuePenaltyCap, e.cfg.IssuePenaltyPerItem*float64(len(issues)))
	score := math.Max(e.cfg.ScoreFloor, base-penalty)
	score = clamp01(score * e.taskRelevance(session, report))

	record := m.IterationRecord{
		Number:  number,
		Report:  report,
		Outcome: outcome,
		Issues:  issues,
		Score:   score,
	}

	session.Iterations = append(session.Iterations, record)

	slog.Info("iteration evaluated",
		"session", session.ID,
		"iteration", number,
		"score", score,
		"issues", len(issues),
		"passed", outcome.PassedTests,
		"total", outcome.TotalTests,
	)

	if number == m.MaxIterations {
		e.complete(session)
	}

	return record, nil
}

// Finalize moves a session to its terminal state and reports the verdict.
// Aborted sessions keep their stored verdict.
func (e *evaluator) Finalize(session *m.Session) (float64, bool) {
	if !session.State.Terminal() {
		e.complete(session)
	}

	return session.FinalScore, session.Accepted
}

func (e *evaluator) complete(session *m.Session) {
	session.State = m.SessionComplete
	session.FinalScore = session.LastScore()
	session.Accepted = session.FinalScore >= e.cfg.AcceptThreshold
}

func (e *evaluator) abort(session *m.Session) {
	session.State = m.SessionAborted
	session.FinalScore = session.LastScore()
	session.Accepted = false
}

// taskRelevance derives the iteration multiplier from the Relevance
// metric. Without a task description relevance cannot be assessed and
// full relevance is assumed; with one, the multiplier is floored at 0.4
// so a vocabulary mismatch dampens rather than zeroes the iteration.
func (e *evaluator) taskRelevance(session *m.Session, report m.QualityReport) float64 {
	if session.TaskDescription == "" {
		return 1.0
	}

	return math.Min(1, math.Max(0.4, report.MetricScore(m.MetricRelevance)))
}

// detectIssues folds execution errors, quality weaknesses and (from
// iteration 3 on) performance-concern vocabulary in the generated tests
// into the ordered issue list feeding the penalty.
func detectIssues(iteration int, outcome m.ExecutionOutcome, report m.QualityReport, testSource string) []string {
	var issues []string

	for _, execErr := range outcome.Errors {
		issues = append(issues, "execution error: "+execErr)
	}

	for _, weakness := range report.Weaknesses {
		issues = append(issues, "quality: "+weakness)
	}

	if iteration >= 3 && catalog.Default().Matches(catalog.GroupPerfConcern, testSource) {
		issues = append(issues, fmt.Sprintf("performance concern identified in iteration %d", iteration))
	}

	return issues
}
