package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

const richSample = `import pytest

# exercises the reserve flow
class TestReserve:
    @pytest.mark.parametrize("count", [1, 5])
    def test_reserve_reduces_available_stock(self, count):
        inventory = Inventory()
        inventory.restock("widget", 10)
        inventory.reserve("widget", count)
        assert inventory.available("widget") == 10 - count

    def test_reserve_empty_name_raises_error(self):
        with pytest.raises(ValueError):
            Inventory().reserve("", 1)
`

func TestEvaluateEmptySampleReportsSingleWeakness(t *testing.T) {
	report := NewAggregator().Evaluate(m.Sample{SourceText: "   \n\t  "})

	require.Zero(t, report.Overall)
	require.Equal(t, []string{emptyWeakness}, report.Weaknesses)
	require.Empty(t, report.Strengths)

	for _, name := range m.MetricNames() {
		require.Zero(t, report.MetricScore(name))
	}
}

func TestEvaluateShortSampleIsDegenerate(t *testing.T) {
	report := NewAggregator().Evaluate(m.Sample{SourceText: "x := 1"})
	require.Zero(t, report.Overall)
	require.Equal(t, []string{emptyWeakness}, report.Weaknesses)
}

func TestEvaluateScoresWithinBounds(t *testing.T) {
	report := NewAggregator().Evaluate(m.Sample{SourceText: richSample})

	require.GreaterOrEqual(t, report.Overall, 0.0)
	require.LessOrEqual(t, report.Overall, 1.0)
	require.Len(t, report.Metrics, len(m.MetricNames()))

	for _, name := range m.MetricNames() {
		score := report.MetricScore(name)
		require.GreaterOrEqual(t, score, 0.0, "metric %s", name)
		require.LessOrEqual(t, score, 1.0, "metric %s", name)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	agg := NewAggregator()
	sample := m.Sample{
		SourceText:      richSample,
		TaskDescription: "implement inventory reservation",
	}

	first := agg.Evaluate(sample)
	second := agg.Evaluate(sample)

	require.Equal(t, first, second)
}

func TestEvaluateDetectsLanguage(t *testing.T) {
	report := NewAggregator().Evaluate(m.Sample{SourceText: richSample})
	require.Equal(t, m.LanguagePython, report.DetectedLanguage)
}

func TestEvaluateKeepsExplicitLanguage(t *testing.T) {
	report := NewAggregator().Evaluate(m.Sample{SourceText: richSample, Language: m.LanguageRuby})
	require.Equal(t, m.LanguageRuby, report.DetectedLanguage)
}

func TestEvaluateOverallMatchesWeightedSum(t *testing.T) {
	report := NewAggregator().Evaluate(m.Sample{SourceText: richSample})

	expected := 0.0
	for name, weight := range metricWeights {
		expected += report.MetricScore(name) * weight
	}

	require.InDelta(t, expected, report.Overall, 1e-9)
}

func TestEvaluateNeutralRelevanceIsNotAWeakness(t *testing.T) {
	report := NewAggregator().Evaluate(m.Sample{SourceText: richSample})

	// Without a task description relevance sits at the neutral 0.5,
	// between the weakness and strength thresholds.
	require.InDelta(t, 0.5, report.MetricScore(m.MetricRelevance), 1e-9)
	require.NotContains(t, report.Weaknesses, metricTags[m.MetricRelevance].weakness)
	require.NotContains(t, report.Strengths, metricTags[m.MetricRelevance].strength)
}
