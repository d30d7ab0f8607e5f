package metrics

import (
	"math"

	"testgrade.dev/pkg/testgrade/internal/catalog"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// AssertionDensity scores assertions per test declaration.
//
// The normalization is piecewise: below one assertion per test is
// suboptimal, one to five is the sweet spot, and past five the score
// decays gently (an assertion wall is not five times better than five
// focused checks). Detecting more than one distinct assertion type earns
// a bonus of up to +0.2, capped so the score never exceeds 1.
func AssertionDensity(sample m.Sample) m.MetricResult {
	testCount := cat().Count(catalog.GroupUnit, sample.SourceText)
	if testCount < 1 {
		testCount = 1
	}

	assertions := cat().Count(catalog.GroupAssertions, sample.SourceText)
	density := float64(assertions) / float64(testCount)

	evidence := map[string]float64{
		"assertion_count": float64(assertions),
		"test_count":      float64(testCount),
		"density":         density,
	}

	types := 0

	for _, assertType := range catalog.AssertionTypes() {
		hit := cat().MatchesAssertionType(assertType, sample.SourceText)
		evidence["type_"+string(assertType)] = flag(hit)

		if hit {
			types++
		}
	}

	evidence["assertion_types"] = float64(types)

	score := normalizeDensity(density)
	evidence["normalized"] = score

	if types > 1 {
		score = math.Min(1, score+0.2*float64(types-1)/4)
	}

	return result(score, evidence)
}

func normalizeDensity(density float64) float64 {
	switch {
	case density <= 0:
		return 0
	case density < 1:
		return density * 0.5
	case density <= 5:
		return 0.5 + density/10
	default:
		return clamp01(1 - (density-5)*0.02)
	}
}
