// Package metrics implements the eight quality metric calculators.
//
// Every calculator is a pure function from a Sample to a MetricResult:
// no side effects, no shared state, scores always clamped to [0,1].
// Malformed or empty input degrades to a neutral or zero score with
// evidence explaining why; calculators never return errors.
package metrics

import (
	"math"
	"regexp"
	"strings"

	"testgrade.dev/pkg/testgrade/internal/catalog"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// Calculator computes one metric for a sample.
type Calculator func(m.Sample) m.MetricResult

// ByName returns the calculator for a metric name, or nil.
func ByName(name m.MetricName) Calculator {
	switch name {
	case m.MetricCompleteness:
		return Completeness
	case m.MetricVariety:
		return Variety
	case m.MetricEdgeCases:
		return EdgeCaseCoverage
	case m.MetricAssertionDensity:
		return AssertionDensity
	case m.MetricReadability:
		return Readability
	case m.MetricRelevance:
		return Relevance
	case m.MetricAssertionQuality:
		return AssertionQuality
	case m.MetricComplexityCoverage:
		return ComplexityCoverage
	}

	return nil
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func result(score float64, evidence map[string]float64) m.MetricResult {
	return m.MetricResult{Score: clamp01(score), Evidence: evidence}
}

func flag(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

// testNameExtractors capture the declared name of a test across the
// supported runtimes. Extraction lives here rather than in the catalog
// because the catalog surface is presence/count only.
var testNameExtractors = []*regexp.Regexp{
	regexp.MustCompile(`def\s+test_(\w+)`),
	regexp.MustCompile(`func Test(\w+)\s*\(`),
	regexp.MustCompile(`(?:test|it)\s*\(\s*['"]([^'"]+)`),
	regexp.MustCompile(`fn test_(\w+)`),
	regexp.MustCompile(`void\s+[Tt]est(\w+)\s*\(`),
	regexp.MustCompile(`TEST(?:_F|_P)?\s*\(\s*\w+\s*,\s*(\w+)`),
}

// testDeclNames extracts the names of all test declarations in order.
func testDeclNames(text string) []string {
	var names []string
	for _, re := range testNameExtractors {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			names = append(names, match[1])
		}
	}

	return names
}

// implementationFuncExtractors capture declared function names in
// implementation source across the supported runtimes.
var implementationFuncExtractors = []*regexp.Regexp{
	regexp.MustCompile(`def\s+(\w+)\s*\(`),
	regexp.MustCompile(`function\s+(\w+)\s*\(`),
	regexp.MustCompile(`func\s+(?:\(\w+ [^)]+\)\s*)?(\w+)\s*\(`),
	regexp.MustCompile(`fn\s+(\w+)\s*\(`),
	regexp.MustCompile(`(?:public|private|protected)\s+\w+\s+(\w+)\s*\(`),
}

// implementationFunctions returns the set of function names declared in
// implementation source.
func implementationFunctions(source string) map[string]struct{} {
	funcs := make(map[string]struct{})
	for _, re := range implementationFuncExtractors {
		for _, match := range re.FindAllStringSubmatch(source, -1) {
			funcs[match[1]] = struct{}{}
		}
	}

	return funcs
}

// containsWord reports a case-insensitive whole-word or substring hit.
func containsWord(text, term string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, strings.ToLower(term))
}

func cat() *catalog.Catalog {
	return catalog.Default()
}
