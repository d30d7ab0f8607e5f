// Package catalog holds the immutable pattern tables used by the quality
// metrics. Rule sets are pure data: groups of compiled expressions queried
// by presence or occurrence count, never mutated during an assessment.
package catalog

import (
	"regexp"

	m "testgrade.dev/pkg/testgrade/internal/model"
)

// Version identifies the rule-set revision embedded in this build.
const Version = "1"

// Group names a concern recognized in test or source text.
type Group string

// Rule groups queried by the metric calculators.
const (
	GroupUnit          Group = "unit"
	GroupParameterized Group = "parameterized"
	GroupMocking       Group = "mocking"
	GroupFixtures      Group = "fixtures"
	GroupGrouping      Group = "grouping"
	GroupNestedGroup   Group = "nested_grouping"
	GroupDataDriven    Group = "data_driven"
	GroupIntegration   Group = "integration"
	GroupPerformance   Group = "performance"
	GroupSecurity      Group = "security"
	GroupAssertions    Group = "assertions"
	GroupEdgeCaseVocab Group = "edge_case_vocab"
	GroupPathExercise  Group = "path_exercise"
	GroupCoverageVocab Group = "coverage_vocab"
	GroupPerfConcern   Group = "performance_concern"
)

// EdgeCategory is one of the eight recognized edge-case classes.
type EdgeCategory string

// The eight edge-case categories.
const (
	EdgeNullEmpty    EdgeCategory = "null_empty"
	EdgeBoundary     EdgeCategory = "boundary"
	EdgeError        EdgeCategory = "error"
	EdgeLargeInput   EdgeCategory = "large_input"
	EdgeSpecialChars EdgeCategory = "special_chars"
	EdgeConcurrency  EdgeCategory = "concurrency"
	EdgeSecurity     EdgeCategory = "security"
	EdgePerformance  EdgeCategory = "performance"
)

// EdgeCategories lists the categories in a fixed order.
func EdgeCategories() []EdgeCategory {
	return []EdgeCategory{
		EdgeNullEmpty, EdgeBoundary, EdgeError, EdgeLargeInput,
		EdgeSpecialChars, EdgeConcurrency, EdgeSecurity, EdgePerformance,
	}
}

// AssertionType classifies what an assertion checks.
type AssertionType string

// The five assertion types counted for the density variety bonus.
const (
	AssertEquality  AssertionType = "equality"
	AssertBoolean   AssertionType = "boolean"
	AssertNullCheck AssertionType = "null_check"
	AssertException AssertionType = "exception"
	AssertCollect   AssertionType = "collection"
)

// AssertionTypes lists the assertion types in a fixed order.
func AssertionTypes() []AssertionType {
	return []AssertionType{
		AssertEquality, AssertBoolean, AssertNullCheck,
		AssertException, AssertCollect,
	}
}

// QualityAspect classifies how strict an assertion is.
type QualityAspect string

// The five assertion-quality aspects.
const (
	AspectExactMatch    QualityAspect = "exact_match"
	AspectTypeCheck     QualityAspect = "type_check"
	AspectCollection    QualityAspect = "collection_check"
	AspectException     QualityAspect = "exception_check"
	AspectCustomMessage QualityAspect = "custom_message"
)

// QualityAspects lists the aspects in a fixed order.
func QualityAspects() []QualityAspect {
	return []QualityAspect{
		AspectExactMatch, AspectTypeCheck, AspectCollection,
		AspectException, AspectCustomMessage,
	}
}

// Catalog is an immutable set of compiled rule groups.
type Catalog struct {
	groups     map[Group][]*regexp.Regexp
	edges      map[EdgeCategory][]*regexp.Regexp
	asserts    map[AssertionType][]*regexp.Regexp
	aspects    map[QualityAspect][]*regexp.Regexp
	languages  map[m.Language][]*regexp.Regexp
	complexity []*regexp.Regexp
	stopWords  map[string]struct{}
}

var std = New()

// Default returns the shared read-only catalog.
func Default() *Catalog {
	return std
}

// Matches reports whether any rule in the group matches the text.
func (c *Catalog) Matches(group Group, text string) bool {
	for _, rule := range c.groups[group] {
		if rule.MatchString(text) {
			return true
		}
	}

	return false
}

// Count sums occurrences of every rule in the group across the text.
func (c *Catalog) Count(group Group, text string) int {
	total := 0
	for _, rule := range c.groups[group] {
		total += len(rule.FindAllStringIndex(text, -1))
	}

	return total
}

// MatchesEdge reports whether the text touches an edge-case category.
func (c *Catalog) MatchesEdge(cat EdgeCategory, text string) bool {
	for _, rule := range c.edges[cat] {
		if rule.MatchString(text) {
			return true
		}
	}

	return false
}

// MatchesAssertionType reports whether an assertion type appears in the text.
func (c *Catalog) MatchesAssertionType(t AssertionType, text string) bool {
	for _, rule := range c.asserts[t] {
		if rule.MatchString(text) {
			return true
		}
	}

	return false
}

// CountAspect sums occurrences of an assertion-quality aspect in the text.
func (c *Catalog) CountAspect(aspect QualityAspect, text string) int {
	total := 0
	for _, rule := range c.aspects[aspect] {
		total += len(rule.FindAllStringIndex(text, -1))
	}

	return total
}

// CountComplexity sums cyclomatic-complexity indicators in source text.
func (c *Catalog) CountComplexity(text string) int {
	total := 0
	for _, rule := range c.complexity {
		total += len(rule.FindAllStringIndex(text, -1))
	}

	return total
}

// IsStopWord reports whether a lowercase token carries no task meaning.
func (c *Catalog) IsStopWord(word string) bool {
	_, ok := c.stopWords[word]
	return ok
}

// DetectLanguage scores per-language feature patterns and returns the
// best match, or LanguageUnknown when nothing matches.
func (c *Catalog) DetectLanguage(text string) m.Language {
	best := m.LanguageUnknown
	bestScore := 0

	for _, lang := range m.Languages() {
		score := 0
		for _, rule := range c.languages[lang] {
			score += len(rule.FindAllStringIndex(text, -1))
		}

		if score > bestScore {
			bestScore = score
			best = lang
		}
	}

	return best
}

func compileAll(patterns []string) []*regexp.Regexp {
	rules := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, regexp.MustCompile(p))
	}

	return rules
}
