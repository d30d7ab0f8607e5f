package metrics

import (
	"math"

	"testgrade.dev/pkg/testgrade/internal/catalog"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// ComplexityCoverage compares test breadth against the cyclomatic
// complexity of the implementation: branches, loops, switch arms,
// exception handling and logical operators on one side, test-side
// vocabulary suggesting those paths are exercised on the other.
//
// Without implementation source the metric is neutral, and so is a
// trivially straight-line implementation. Explicit coverage vocabulary
// in the tests earns a small bonus.
func ComplexityCoverage(sample m.Sample) m.MetricResult {
	if !sample.HasImplementation() {
		return result(neutralScore, map[string]float64{"no_implementation": 1})
	}

	complexity := cat().CountComplexity(sample.ImplementationSource)
	evidence := map[string]float64{"source_complexity": float64(complexity)}

	if complexity == 0 {
		evidence["trivial_implementation"] = 1
		return result(neutralScore, evidence)
	}

	indicators := cat().Count(catalog.GroupPathExercise, sample.SourceText)
	evidence["test_indicators"] = float64(indicators)

	score := math.Min(1, float64(indicators)/float64(complexity))

	if cat().Matches(catalog.GroupCoverageVocab, sample.SourceText) {
		evidence["coverage_vocabulary"] = 1
		score = math.Min(1, score+0.1)
	}

	return result(score, evidence)
}
