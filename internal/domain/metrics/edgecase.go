package metrics

import (
	"math"

	"testgrade.dev/pkg/testgrade/internal/catalog"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// EdgeCaseCoverage measures how well the tests exercise the eight
// edge-case categories.
//
// Two ratios are always available: occurrence count (five or more hits of
// edge-case vocabulary saturate) and category coverage (covered/8). When a
// task description is present a third ratio joins the average: the fraction
// of covered categories that the task itself references, so tests chasing
// categories the task never mentions do not inflate the score.
func EdgeCaseCoverage(sample m.Sample) m.MetricResult {
	occurrences := cat().Count(catalog.GroupEdgeCaseVocab, sample.SourceText)
	countRatio := math.Min(1, float64(occurrences)/5)

	categories := catalog.EdgeCategories()
	evidence := map[string]float64{"occurrences": float64(occurrences)}

	var covered []catalog.EdgeCategory

	for _, category := range categories {
		hit := cat().MatchesEdge(category, sample.SourceText)
		evidence["category_"+string(category)] = flag(hit)

		if hit {
			covered = append(covered, category)
		}
	}

	categoryRatio := float64(len(covered)) / float64(len(categories))
	evidence["categories_covered"] = float64(len(covered))
	evidence["count_ratio"] = countRatio
	evidence["category_ratio"] = categoryRatio

	if !sample.HasTaskDescription() {
		evidence["task_relevance_unavailable"] = 1
		return result((countRatio+categoryRatio)/2, evidence)
	}

	relevant := 0

	for _, category := range covered {
		if cat().MatchesEdge(category, sample.TaskDescription) {
			relevant++
		}
	}

	relevanceRatio := 0.0
	if len(covered) > 0 {
		relevanceRatio = float64(relevant) / float64(len(covered))
	}

	evidence["task_relevant_categories"] = float64(relevant)
	evidence["relevance_ratio"] = relevanceRatio

	return result((countRatio+categoryRatio+relevanceRatio)/3, evidence)
}
