package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

func TestNormalizeDensityCheckpoints(t *testing.T) {
	require.Zero(t, normalizeDensity(0))
	require.InDelta(t, 0.25, normalizeDensity(0.5), 1e-9)
	require.InDelta(t, 0.8, normalizeDensity(3), 1e-9)
	require.InDelta(t, 1.0, normalizeDensity(5), 1e-9)
	require.InDelta(t, 0.9, normalizeDensity(10), 1e-9)
}

func TestAssertionDensitySingleType(t *testing.T) {
	sample := m.Sample{SourceText: `def test_sum():
    assert total(1) == 2
    assert total(2) == 3
`}

	res := AssertionDensity(sample)
	require.InDelta(t, 1.0, res.Evidence["density"], 1e-9)
	require.InDelta(t, 0.6, res.Score, 1e-9)
}

func TestAssertionDensityTypeVarietyBonus(t *testing.T) {
	sample := m.Sample{SourceText: `def test_flags():
    assertTrue(x)
    assertEquals(a, b)
`}

	res := AssertionDensity(sample)
	require.InDelta(t, 2, res.Evidence["assertion_types"], 1e-9)
	require.InDelta(t, 0.75, res.Score, 1e-9)
}

func TestAssertionDensityNoAssertionsScoresZero(t *testing.T) {
	res := AssertionDensity(m.Sample{SourceText: "def test_nothing():\n    pass\n"})
	require.Zero(t, res.Score)
}
