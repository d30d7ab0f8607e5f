package metrics

import (
	"math"
	"strings"
	"unicode"

	"testgrade.dev/pkg/testgrade/internal/catalog"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// Readability weights comment density, descriptive test names, grouping
// constructs, naming-convention consistency, line length and nested
// grouping into one maintainability score.
//
// Weights: comments 0.2, descriptive names 0.3, grouping 0.2, naming
// consistency 0.1, line length 0.1, nested grouping 0.1.
func Readability(sample m.Sample) m.MetricResult {
	lines := strings.Split(sample.SourceText, "\n")
	evidence := make(map[string]float64, 8)

	commentScore := commentRatioScore(lines)
	evidence["comment_score"] = commentScore

	names := testDeclNames(sample.SourceText)
	descriptive := 0

	for _, name := range names {
		if len(name) >= 8 {
			descriptive++
		}
	}

	descriptiveRatio := 0.0
	if len(names) > 0 {
		descriptiveRatio = float64(descriptive) / float64(len(names))
	}

	evidence["test_names"] = float64(len(names))
	evidence["descriptive_names"] = float64(descriptive)

	grouped := cat().Matches(catalog.GroupGrouping, sample.SourceText)
	nested := cat().Matches(catalog.GroupNestedGroup, sample.SourceText)
	evidence["grouped"] = flag(grouped)
	evidence["nested"] = flag(nested)

	consistency := namingConsistency(names)
	evidence["naming_consistency"] = consistency

	lengthScore := lineLengthScore(lines)
	evidence["line_length_score"] = lengthScore

	score := commentScore*0.2 +
		descriptiveRatio*0.3 +
		flag(grouped)*0.2 +
		consistency*0.1 +
		lengthScore*0.1 +
		flag(nested)*0.1

	return result(score, evidence)
}

// commentRatioScore rewards comment density, reaching full contribution
// at roughly one comment line in five.
func commentRatioScore(lines []string) float64 {
	if len(lines) == 0 {
		return 0
	}

	comments := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, `"""`) {
			comments++
		}
	}

	ratio := float64(comments) / float64(len(lines))

	return math.Min(1, ratio*5)
}

func lineLengthScore(lines []string) float64 {
	if len(lines) == 0 {
		return 0
	}

	total := 0
	for _, line := range lines {
		total += len(line)
	}

	avg := float64(total) / float64(len(lines))

	return math.Max(0, math.Min(1, 2-avg/80))
}

// namingConsistency is the share of test names following the dominant
// case style (snake, camel or Pascal).
func namingConsistency(names []string) float64 {
	if len(names) == 0 {
		return 0
	}

	counts := map[string]int{}

	for _, name := range names {
		counts[caseStyle(name)]++
	}

	dominant := 0
	for _, count := range counts {
		if count > dominant {
			dominant = count
		}
	}

	return float64(dominant) / float64(len(names))
}

func caseStyle(name string) string {
	switch {
	case strings.Contains(name, "_"):
		return "snake"
	case name != "" && unicode.IsUpper(rune(name[0])):
		return "pascal"
	default:
		return "camel"
	}
}
