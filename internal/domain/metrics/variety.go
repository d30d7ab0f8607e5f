package metrics

import (
	"math"

	"testgrade.dev/pkg/testgrade/internal/catalog"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// varietyApproaches maps each recognized testing approach to its rule group.
var varietyApproaches = []struct {
	name  string
	group catalog.Group
}{
	{"parameterized", catalog.GroupParameterized},
	{"mocking", catalog.GroupMocking},
	{"setup_teardown", catalog.GroupFixtures},
	{"grouping", catalog.GroupGrouping},
	{"data_driven", catalog.GroupDataDriven},
	{"integration", catalog.GroupIntegration},
	{"performance", catalog.GroupPerformance},
	{"security", catalog.GroupSecurity},
}

// Variety counts how many distinct testing approaches appear in the sample.
// Four or more of the eight saturate the score.
func Variety(sample m.Sample) m.MetricResult {
	evidence := make(map[string]float64, len(varietyApproaches)+1)
	present := 0

	for _, approach := range varietyApproaches {
		hit := cat().Matches(approach.group, sample.SourceText)
		evidence[approach.name] = flag(hit)

		if hit {
			present++
		}
	}

	evidence["approaches_present"] = float64(present)

	return result(math.Min(1, float64(present)/4), evidence)
}
