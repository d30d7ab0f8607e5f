package domain

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

const iterationTests = `def test_slugify_lowercases():
    assert slugify("Hello") == "hello"

def test_slugify_replaces_spaces():
    assert slugify("a b") == "a-b"
`

const iterationImpl = `def slugify(text):
    return text.lower().replace(" ", "-")
`

func newTestEvaluator() Evaluator {
	return NewEvaluator(NewAggregator(), DefaultEvaluatorConfig())
}

func TestNewSessionStartsPending(t *testing.T) {
	session := newTestEvaluator().NewSession("s1", "", m.LanguagePython)

	require.Equal(t, m.SessionPending, session.State)
	require.Empty(t, session.Iterations)
	require.False(t, session.State.Terminal())
}

func TestAdvanceAllPassingIteration(t *testing.T) {
	eval := newTestEvaluator()
	session := eval.NewSession("s1", "", m.LanguagePython)

	record, err := eval.Advance(context.Background(), session, iterationTests, iterationImpl, m.ExecutionOutcome{
		TotalTests:  10,
		PassedTests: 10,
	})
	require.NoError(t, err)

	require.Equal(t, 1, record.Number)
	require.Equal(t, m.SessionRunning, session.State)
	require.Len(t, session.Iterations, 1)

	// base capped at 0.8, minus 0.1 per detected issue, floored at 0.1;
	// no task description means no relevance multiplier.
	expected := math.Max(0.1, 0.8-0.1*float64(len(record.Issues)))
	require.InDelta(t, expected, record.Score, 1e-9)
}

func TestAdvanceAllFailingIterationHitsFloor(t *testing.T) {
	eval := newTestEvaluator()
	session := eval.NewSession("s1", "", m.LanguagePython)

	record, err := eval.Advance(context.Background(), session, iterationTests, iterationImpl, m.ExecutionOutcome{
		TotalTests:  10,
		PassedTests: 0,
		Errors:      []string{"all assertions failed"},
	})
	require.NoError(t, err)
	require.InDelta(t, 0.1, record.Score, 1e-9)
	require.Contains(t, record.Issues, "execution error: all assertions failed")
}

func TestAdvanceZeroTestsUsesNeutralBase(t *testing.T) {
	eval := newTestEvaluator()
	session := eval.NewSession("s1", "", m.LanguagePython)

	record, err := eval.Advance(context.Background(), session, iterationTests, iterationImpl, m.ExecutionOutcome{})
	require.NoError(t, err)

	expected := math.Max(0.1, 0.4-0.1*float64(len(record.Issues)))
	require.InDelta(t, expected, record.Score, 1e-9)
}

func TestAdvanceFiveIterationsCompletesSession(t *testing.T) {
	eval := newTestEvaluator()
	session := eval.NewSession("s1", "", m.LanguagePython)

	for i := 1; i <= m.MaxIterations; i++ {
		record, err := eval.Advance(context.Background(), session, iterationTests, iterationImpl, m.ExecutionOutcome{
			TotalTests:  4,
			PassedTests: 4,
		})
		require.NoError(t, err)
		require.Equal(t, i, record.Number)
	}

	require.Equal(t, m.SessionComplete, session.State)
	require.Len(t, session.Iterations, m.MaxIterations)
	require.Equal(t, session.LastScore(), session.FinalScore)

	_, err := eval.Advance(context.Background(), session, iterationTests, iterationImpl, m.ExecutionOutcome{})
	require.ErrorIs(t, err, ErrSessionTerminal)
}

func TestAdvanceFatalOutcomeAbortsWithLastGoodScore(t *testing.T) {
	eval := newTestEvaluator()
	session := eval.NewSession("s1", "", m.LanguagePython)

	record, err := eval.Advance(context.Background(), session, iterationTests, iterationImpl, m.ExecutionOutcome{
		TotalTests:  4,
		PassedTests: 4,
	})
	require.NoError(t, err)

	_, err = eval.Advance(context.Background(), session, iterationTests, "broken {", m.ExecutionOutcome{
		Fatal:  true,
		Errors: []string{"SyntaxError"},
	})
	require.ErrorIs(t, err, ErrFatalOutcome)

	require.Equal(t, m.SessionAborted, session.State)
	require.False(t, session.Accepted)
	require.InDelta(t, record.Score, session.FinalScore, 1e-9)
	require.Len(t, session.Iterations, 1)
}

func TestAdvanceCancelledContextAborts(t *testing.T) {
	eval := newTestEvaluator()
	session := eval.NewSession("s1", "", m.LanguagePython)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eval.Advance(ctx, session, iterationTests, iterationImpl, m.ExecutionOutcome{})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, m.SessionAborted, session.State)
}

func TestAdvanceTaskRelevanceDampensScore(t *testing.T) {
	eval := newTestEvaluator()

	aligned := eval.NewSession("aligned", "implement slugify for lowercase text", m.LanguagePython)
	misaligned := eval.NewSession("misaligned", "parse binary network packets efficiently", m.LanguagePython)

	outcome := m.ExecutionOutcome{TotalTests: 4, PassedTests: 4}

	alignedRecord, err := eval.Advance(context.Background(), aligned, iterationTests, iterationImpl, outcome)
	require.NoError(t, err)

	misalignedRecord, err := eval.Advance(context.Background(), misaligned, iterationTests, iterationImpl, outcome)
	require.NoError(t, err)

	require.Greater(t, alignedRecord.Score, misalignedRecord.Score)
}

func TestFinalizeCompletesRunningSession(t *testing.T) {
	cfg := DefaultEvaluatorConfig()
	cfg.AcceptThreshold = 0.05

	eval := NewEvaluator(NewAggregator(), cfg)
	session := eval.NewSession("s1", "", m.LanguagePython)

	_, err := eval.Advance(context.Background(), session, iterationTests, iterationImpl, m.ExecutionOutcome{
		TotalTests:  4,
		PassedTests: 4,
	})
	require.NoError(t, err)

	score, accepted := eval.Finalize(session)

	require.Equal(t, m.SessionComplete, session.State)
	require.Equal(t, session.LastScore(), score)
	require.True(t, accepted)
}

func TestFinalizeEmptySessionRejects(t *testing.T) {
	eval := newTestEvaluator()
	session := eval.NewSession("s1", "", m.LanguagePython)

	score, accepted := eval.Finalize(session)

	require.Zero(t, score)
	require.False(t, accepted)
	require.True(t, session.State.Terminal())
}

func TestDetectIssuesPerformanceConcernFromIterationThree(t *testing.T) {
	text := "def test_slow_path():\n    # timeout expected\n    pass\n"
	outcome := m.ExecutionOutcome{TotalTests: 1, PassedTests: 1}
	report := NewAggregator().Evaluate(m.Sample{SourceText: text})

	early := detectIssues(2, outcome, report, text)
	late := detectIssues(3, outcome, report, text)

	require.NotContains(t, early, "performance concern identified in iteration 2")
	require.Contains(t, late, "performance concern identified in iteration 3")
}
