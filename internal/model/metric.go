package model

// MetricName identifies one of the quality metrics.
type MetricName string

const (
	// MetricCompleteness estimates how much of the implementation the tests reach.
	MetricCompleteness MetricName = "completeness"
	// MetricVariety counts distinct testing approaches.
	MetricVariety MetricName = "variety"
	// MetricEdgeCases measures edge-case category coverage.
	MetricEdgeCases MetricName = "edge_cases"
	// MetricAssertionDensity measures assertions per test declaration.
	MetricAssertionDensity MetricName = "assertion_density"
	// MetricReadability measures naming, comments and structure.
	MetricReadability MetricName = "readability"
	// MetricRelevance measures overlap with the task description.
	MetricRelevance MetricName = "relevance"
	// MetricAssertionQuality measures the strictness of the assertions used.
	MetricAssertionQuality MetricName = "assertion_quality"
	// MetricComplexityCoverage compares test breadth against implementation complexity.
	MetricComplexityCoverage MetricName = "complexity_coverage"
)

// MetricNames lists all metrics in aggregation order. The order is load
// bearing: aggregator weights are applied positionally.
func MetricNames() []MetricName {
	return []MetricName{
		MetricCompleteness,
		MetricVariety,
		MetricEdgeCases,
		MetricAssertionDensity,
		MetricReadability,
		MetricRelevance,
		MetricAssertionQuality,
		MetricComplexityCoverage,
	}
}

// MetricResult is the outcome of a single metric calculation.
// Score is always clamped to [0,1]. Evidence carries the counts and flags
// that produced the score; fallback paths record why they were taken.
type MetricResult struct {
	Score    float64            `yaml:"score"`
	Evidence map[string]float64 `yaml:"evidence,omitempty"`
}

// QualityReport is the aggregate verdict for one Sample. The YAML shape is
// stable: it is consumed by the view command and external dashboards.
type QualityReport struct {
	Metrics          map[MetricName]MetricResult `yaml:"metrics"`
	Overall          float64                     `yaml:"overall"`
	Strengths        []string                    `yaml:"strengths,omitempty"`
	Weaknesses       []string                    `yaml:"weaknesses,omitempty"`
	DetectedLanguage Language                    `yaml:"language"`
}

// ReportEntry pairs a stored QualityReport with the file it assessed.
type ReportEntry struct {
	Path   Path          `yaml:"path"`
	Report QualityReport `yaml:"report"`
}

// MetricScore returns the score for a metric, or zero when absent.
func (r QualityReport) MetricScore(name MetricName) float64 {
	return r.Metrics[name].Score
}
