package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

func TestDetectLanguagePython(t *testing.T) {
	text := "import pytest\n\ndef test_addition():\n    assert 1 + 1 == 2\n"
	require.Equal(t, m.LanguagePython, Default().DetectLanguage(text))
}

func TestDetectLanguageGo(t *testing.T) {
	text := "package calc\n\nfunc TestAdd(t *testing.T) {\n\tgot := Add(1, 2)\n\t_ = got\n}\n"
	require.Equal(t, m.LanguageGo, Default().DetectLanguage(text))
}

func TestDetectLanguageUnknownOnNoise(t *testing.T) {
	require.Equal(t, m.LanguageUnknown, Default().DetectLanguage("1234 5678"))
}

func TestMatchesUnitGroup(t *testing.T) {
	require.True(t, Default().Matches(GroupUnit, "def test_reserve():"))
	require.True(t, Default().Matches(GroupUnit, "func TestReserve(t *testing.T) {"))
	require.True(t, Default().Matches(GroupUnit, "it('reserves stock', () => {"))
	require.False(t, Default().Matches(GroupUnit, "helper code only"))
}

func TestCountSumsAcrossRules(t *testing.T) {
	// "def test_x" hits both the python-decl rule and the bare name rule.
	require.Equal(t, 2, Default().Count(GroupUnit, "def test_x():"))
	require.Equal(t, 0, Default().Count(GroupUnit, ""))
}

func TestMatchesEdgeCategories(t *testing.T) {
	require.True(t, Default().MatchesEdge(EdgeNullEmpty, "returns empty list"))
	require.True(t, Default().MatchesEdge(EdgeBoundary, "negative count"))
	require.True(t, Default().MatchesEdge(EdgeError, "raises an error"))
	require.False(t, Default().MatchesEdge(EdgeConcurrency, "plain sequential code"))
}

func TestMatchesEdgeWordBoundaries(t *testing.T) {
	// "errors" must not satisfy the whole-word "error" rule on its own.
	require.False(t, Default().MatchesEdge(EdgeError, "mirrors"))
	require.True(t, Default().MatchesEdge(EdgeError, "error"))
}

func TestMatchesAssertionType(t *testing.T) {
	require.True(t, Default().MatchesAssertionType(AssertEquality, "assertEquals(a, b)"))
	require.True(t, Default().MatchesAssertionType(AssertException, "pytest raises here: raises"))
	require.False(t, Default().MatchesAssertionType(AssertException, "plain arithmetic"))
}

func TestCountAspectExactMatch(t *testing.T) {
	text := "assert x == 1\nassertEquals(a, b)\n"
	require.Equal(t, 2, Default().CountAspect(AspectExactMatch, text))
}

func TestCountComplexity(t *testing.T) {
	source := "if x:\n    pass\nelse:\n    pass\nfor i in y:\n    pass\n"
	require.Equal(t, 3, Default().CountComplexity(source))
	require.Equal(t, 0, Default().CountComplexity("x = 1"))
}

func TestIsStopWord(t *testing.T) {
	require.True(t, Default().IsStopWord("the"))
	require.True(t, Default().IsStopWord("implement"))
	require.False(t, Default().IsStopWord("slugify"))
}

func TestNestedGroupingNeedsTwoGroups(t *testing.T) {
	single := "describe('cart', () => {})"
	nested := "describe('cart', () => { describe('totals', () => {}) })"
	require.False(t, Default().Matches(GroupNestedGroup, single))
	require.True(t, Default().Matches(GroupNestedGroup, nested))
}
