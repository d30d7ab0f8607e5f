// Package domain contains the quality aggregation, TDD evaluation and
// decision logic.
package domain

import (
	"log/slog"
	"unicode"

	"golang.org/x/sync/errgroup"
	"testgrade.dev/pkg/testgrade/internal/catalog"
	"testgrade.dev/pkg/testgrade/internal/domain/metrics"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// minSampleChars is the minimum number of non-whitespace characters a
// sample must carry before the calculators run at all.
const minSampleChars = 10

// emptyWeakness is the single weakness reported for degenerate samples.
const emptyWeakness = "tests are empty or minimal"

const (
	strengthThreshold = 0.7
	weaknessThreshold = 0.4
)

// metricWeights is the fixed linear combination applied by Evaluate.
// The weights sum to 1.0; a uniform 1/n fallback applies only if the
// metric count ever diverges from the weight count.
var metricWeights = map[m.MetricName]float64{
	m.MetricCompleteness:       0.20,
	m.MetricVariety:            0.15,
	m.MetricEdgeCases:          0.15,
	m.MetricAssertionDensity:   0.10,
	m.MetricReadability:        0.10,
	m.MetricRelevance:          0.10,
	m.MetricAssertionQuality:   0.10,
	m.MetricComplexityCoverage: 0.10,
}

// metricTags maps each metric to its human-readable strength and
// weakness tags.
var metricTags = map[m.MetricName]struct{ strength, weakness string }{
	m.MetricCompleteness:       {"good test coverage", "limited test coverage"},
	m.MetricVariety:            {"good variety of test approaches", "limited variety of test approaches"},
	m.MetricEdgeCases:          {"good edge case handling", "insufficient edge case handling"},
	m.MetricAssertionDensity:   {"strong assertion density", "low assertion density"},
	m.MetricReadability:        {"high test readability", "poor test readability"},
	m.MetricRelevance:          {"tests well-aligned with task", "tests poorly aligned with task"},
	m.MetricAssertionQuality:   {"strict, specific assertions", "weak assertions"},
	m.MetricComplexityCoverage: {"control-flow paths well exercised", "implementation complexity under-tested"},
}

// Aggregator turns one sample into a quality report.
type Aggregator interface {
	Evaluate(sample m.Sample) m.QualityReport
}

type aggregator struct{}

// NewAggregator constructs the standard eight-metric aggregator.
func NewAggregator() Aggregator {
	return &aggregator{}
}

// Evaluate runs all metric calculators against the sample and combines
// their scores. The calculators are pure, so they fan out concurrently
// into fixed slots; output is bit-identical across runs for identical
// input.
func (a *aggregator) Evaluate(sample m.Sample) m.QualityReport {
	if degenerate(sample.SourceText) {
		slog.Debug("degenerate sample, skipping calculators")
		return emptyReport(sample.Language)
	}

	if sample.Language == "" || sample.Language == m.LanguageUnknown {
		sample.Language = catalog.Default().DetectLanguage(sample.SourceText)
	}

	names := m.MetricNames()
	results := make([]m.MetricResult, len(names))

	var group errgroup.Group

	for i, name := range names {
		group.Go(func() error {
			results[i] = metrics.ByName(name)(sample)
			return nil
		})
	}

	// Calculators never fail; Wait only synchronizes.
	_ = group.Wait()

	report := m.QualityReport{
		Metrics:          make(map[m.MetricName]m.MetricResult, len(names)),
		DetectedLanguage: sample.Language,
	}

	for i, name := range names {
		report.Metrics[name] = results[i]
	}

	report.Overall = overallScore(names, results)

	for i, name := range names {
		tags := metricTags[name]

		switch {
		case results[i].Score > strengthThreshold:
			report.Strengths = append(report.Strengths, tags.strength)
		case results[i].Score < weaknessThreshold:
			report.Weaknesses = append(report.Weaknesses, tags.weakness)
		}
	}

	slog.Debug("sample evaluated",
		"overall", report.Overall,
		"language", report.DetectedLanguage,
		"strengths", len(report.Strengths),
		"weaknesses", len(report.Weaknesses),
	)

	return report
}

func overallScore(names []m.MetricName, results []m.MetricResult) float64 {
	overall := 0.0

	if len(names) != len(metricWeights) {
		uniform := 1.0 / float64(len(names))
		for _, res := range results {
			overall += res.Score * uniform
		}

		return clamp01(overall)
	}

	for i, name := range names {
		overall += results[i].Score * metricWeights[name]
	}

	return clamp01(overall)
}

func degenerate(text string) bool {
	chars := 0

	for _, r := range text {
		if !unicode.IsSpace(r) {
			chars++
			if chars >= minSampleChars {
				return false
			}
		}
	}

	return true
}

func emptyReport(lang m.Language) m.QualityReport {
	report := m.QualityReport{
		Metrics:          make(map[m.MetricName]m.MetricResult, len(m.MetricNames())),
		Overall:          0,
		Weaknesses:       []string{emptyWeakness},
		DetectedLanguage: lang,
	}

	if lang == "" {
		report.DetectedLanguage = m.LanguageUnknown
	}

	for _, name := range m.MetricNames() {
		report.Metrics[name] = m.MetricResult{Score: 0}
	}

	return report
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}
