package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

const inventoryImpl = `def add(a, b):
    return a + b

def sub(a, b):
    return a - b
`

func TestCompletenessFullOverlap(t *testing.T) {
	sample := m.Sample{
		SourceText: `def test_add():
    assert add(1, 2) == 3

def test_sub():
    assert sub(3, 1) == 2
`,
		ImplementationSource: inventoryImpl,
	}

	res := Completeness(sample)
	require.InDelta(t, 1.0, res.Score, 1e-9)
	require.InDelta(t, 1.0, res.Evidence["name_overlap"], 1e-9)
	require.InDelta(t, 1.0, res.Evidence["call_overlap"], 1e-9)
}

func TestCompletenessPartialOverlap(t *testing.T) {
	impl := inventoryImpl + "\ndef mul(a, b):\n    return a * b\n"
	sample := m.Sample{
		SourceText:           "def test_add():\n    assert add(1, 2) == 3\n",
		ImplementationSource: impl,
	}

	res := Completeness(sample)
	require.InDelta(t, 1.0/3, res.Score, 1e-9)
	require.InDelta(t, 3, res.Evidence["source_functions"], 1e-9)
}

func TestCompletenessFallbackWithoutImplementation(t *testing.T) {
	text := ""
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		text += "def test_" + name + "():\n    pass\n"
	}

	res := Completeness(m.Sample{SourceText: text})
	require.InDelta(t, 1.0, res.Score, 1e-9)
	require.InDelta(t, 1, res.Evidence["fallback_test_count"], 1e-9)
}

func TestCompletenessFallbackDiminishes(t *testing.T) {
	one := Completeness(m.Sample{SourceText: "def test_only():\n    pass\n"})
	require.Greater(t, one.Score, 0.0)
	require.Less(t, one.Score, 1.0)
}

func TestCompletenessEmptySampleScoresZero(t *testing.T) {
	res := Completeness(m.Sample{SourceText: ""})
	require.Zero(t, res.Score)
}
