package metrics

import (
	"testgrade.dev/pkg/testgrade/internal/catalog"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

// AssertionQuality scores how strict the assertions are: breadth across
// the five quality aspects (weight 0.4), the share of assertions doing
// exact-match comparison (0.4), and the share carrying a custom failure
// message (0.2).
func AssertionQuality(sample m.Sample) m.MetricResult {
	totalAssertions := cat().Count(catalog.GroupAssertions, sample.SourceText)
	aspects := catalog.QualityAspects()

	evidence := map[string]float64{"assertion_count": float64(totalAssertions)}
	detected := 0

	for _, aspect := range aspects {
		count := cat().CountAspect(aspect, sample.SourceText)
		evidence["aspect_"+string(aspect)] = float64(count)

		if count > 0 {
			detected++
		}
	}

	aspectRatio := float64(detected) / float64(len(aspects))
	evidence["aspects_detected"] = float64(detected)

	exactRatio := 0.0
	messageRatio := 0.0

	if totalAssertions > 0 {
		exact := cat().CountAspect(catalog.AspectExactMatch, sample.SourceText)
		messages := cat().CountAspect(catalog.AspectCustomMessage, sample.SourceText)
		exactRatio = clamp01(float64(exact) / float64(totalAssertions))
		messageRatio = clamp01(float64(messages) / float64(totalAssertions))
	}

	evidence["exact_ratio"] = exactRatio
	evidence["message_ratio"] = messageRatio

	return result(0.4*aspectRatio+0.4*exactRatio+0.2*messageRatio, evidence)
}
