package metrics

import (
	"math"
	"strings"

	"testgrade.dev/pkg/testgrade/internal/catalog"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// Completeness estimates how much of the implementation the tests reach.
//
// With implementation source available it averages two independent overlap
// ratios: declared-name overlap (test names mention source functions) and
// call-site overlap (source functions invoked from test code). The straight
// 50/50 average is deliberate; when only one ratio is computable that ratio
// stands alone. Without implementation source the score falls back to a
// diminishing-returns function of the raw test count.
func Completeness(sample m.Sample) m.MetricResult {
	testCount := cat().Count(catalog.GroupUnit, sample.SourceText)
	evidence := map[string]float64{"test_count": float64(testCount)}

	if !sample.HasImplementation() {
		evidence["fallback_test_count"] = 1
		return result(countFallback(testCount), evidence)
	}

	sourceFuncs := implementationFunctions(sample.ImplementationSource)
	if len(sourceFuncs) == 0 {
		evidence["fallback_test_count"] = 1
		evidence["source_functions"] = 0

		return result(countFallback(testCount), evidence)
	}

	evidence["source_functions"] = float64(len(sourceFuncs))

	nameRatio, nameOK := nameOverlap(sample.SourceText, sourceFuncs)
	callRatio := callSiteOverlap(sample.SourceText, sourceFuncs)
	evidence["call_overlap"] = callRatio

	score := callRatio

	if nameOK {
		evidence["name_overlap"] = nameRatio
		score = (nameRatio + callRatio) / 2
	}

	return result(score, evidence)
}

func countFallback(testCount int) float64 {
	return math.Min(1, math.Sqrt(float64(testCount)/10))
}

// nameOverlap is the fraction of source functions referenced by a test
// declaration name. Not computable when no test names were extracted.
func nameOverlap(testText string, sourceFuncs map[string]struct{}) (float64, bool) {
	names := testDeclNames(testText)
	if len(names) == 0 {
		return 0, false
	}

	matched := 0

	for fn := range sourceFuncs {
		for _, name := range names {
			if containsWord(name, fn) {
				matched++
				break
			}
		}
	}

	return float64(matched) / float64(len(sourceFuncs)), true
}

// callSiteOverlap is the fraction of source functions invoked anywhere in
// the test text.
func callSiteOverlap(testText string, sourceFuncs map[string]struct{}) float64 {
	matched := 0

	for fn := range sourceFuncs {
		if strings.Contains(testText, fn+"(") {
			matched++
		}
	}

	return float64(matched) / float64(len(sourceFuncs))
}
