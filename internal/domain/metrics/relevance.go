package metrics

import (
	"regexp"
	"sort"
	"strings"

	m "testgrade.dev/pkg/testgrade/internal/model"
)

// neutralScore is returned when a metric's optional context is missing.
// Tests assert this value specifically: missing context is a documented
// neutral branch, not a silent zero.
const neutralScore = 0.5

var (
	wordToken      = regexp.MustCompile(`[a-zA-Z0-9]{3,}`)
	camelCaseTerm  = regexp.MustCompile(`[A-Z][a-z]+(?:[A-Z][a-z]+)+`)
	snakeCaseTerm  = regexp.MustCompile(`\b[a-z]+(?:_[a-z]+)+\b`)
	nonWordOrSpace = regexp.MustCompile(`[^\w\s]`)
)

// Relevance measures overlap between the task description and the tests:
// the fraction of key task terms present anywhere in the test text
// (weight 0.6) and the fraction of test declaration names containing any
// key term (weight 0.4). Without a task description the metric is neutral.
func Relevance(sample m.Sample) m.MetricResult {
	if !sample.HasTaskDescription() {
		return result(neutralScore, map[string]float64{"no_task_description": 1})
	}

	terms := extractKeyTerms(sample.TaskDescription)
	if len(terms) == 0 {
		return result(neutralScore, map[string]float64{"no_key_terms": 1})
	}

	lowerText := strings.ToLower(sample.SourceText)
	present := 0

	for _, term := range terms {
		if strings.Contains(lowerText, term) {
			present++
		}
	}

	termCoverage := float64(present) / float64(len(terms))

	names := testDeclNames(sample.SourceText)
	relevantNames := 0

	for _, name := range names {
		lowerName := strings.ToLower(name)
		for _, term := range terms {
			if strings.Contains(lowerName, term) {
				relevantNames++
				break
			}
		}
	}

	nameRelevance := 0.0
	if len(names) > 0 {
		nameRelevance = float64(relevantNames) / float64(len(names))
	}

	evidence := map[string]float64{
		"key_terms":      float64(len(terms)),
		"terms_present":  float64(present),
		"term_coverage":  termCoverage,
		"test_names":     float64(len(names)),
		"relevant_names": float64(relevantNames),
		"name_relevance": nameRelevance,
	}

	return result(0.6*termCoverage+0.4*nameRelevance, evidence)
}

// extractKeyTerms pulls stop-word-filtered tokens plus camelCase and
// snake_case compound terms from a task description. The result is sorted
// so downstream output is deterministic.
func extractKeyTerms(text string) []string {
	seen := make(map[string]struct{})

	cleaned := nonWordOrSpace.ReplaceAllString(text, " ")
	for _, token := range wordToken.FindAllString(cleaned, -1) {
		lower := strings.ToLower(token)
		if !cat().IsStopWord(lower) {
			seen[lower] = struct{}{}
		}
	}

	for _, term := range camelCaseTerm.FindAllString(text, -1) {
		seen[strings.ToLower(term)] = struct{}{}
	}

	for _, term := range snakeCaseTerm.FindAllString(text, -1) {
		seen[term] = struct{}{}
	}

	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}

	sort.Strings(terms)

	return terms
}
