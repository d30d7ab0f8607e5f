package catalog

import (
	"regexp"

	m "testgrade.dev/pkg/testgrade/internal/model"
)

// New builds a catalog from the embedded rule tables. The tables are
// additive: a new category is a new entry, not a structural change.
func New() *Catalog {
	return &Catalog{
		groups: map[Group][]*regexp.Regexp{
			GroupUnit: compileAll([]string{
				`test_\w+`, `def test_`,
				`function test`, `it\(\s*['"]\w+`, `test\(\s*['"]\w+`,
				`@Test`, `void test\w+\s*\(`,
				`TEST\(`, `TEST_F\(`, `BOOST_(?:AUTO_)?TEST_CASE`,
				`#\[test\]`, `fn test_\w+`,
				`func Test\w+\(`,
			}),
			GroupParameterized: compileAll([]string{
				`@parameterized`, `@pytest\.mark\.parametrize`,
				`test\.each\(`, `it\.each\(`,
				`@ParameterizedTest`, `@CsvSource`, `@ValueSource`,
				`INSTANTIATE_TEST_SUITE_P`, `TEST_P`,
				`#\[rstest\]`, `#\[case\]`,
				`range\s+\w*[tT]ests`, `range\s+\w*[cC]ases`,
			}),
			GroupMocking: compileAll([]string{
				`(?i)mock`, `(?i)\bstub\b`, `(?i)\bfake\b`, `(?i)\bspy\b`,
				`(?i)\bdummy\b`, `@Mock`, `createMock`, `mockito`,
				`jest\.fn`, `sinon`, `gmock`, `MagicMock`, `\bpatch\b`,
			}),
			GroupFixtures: compileAll([]string{
				`(?:before|after)(?:Each|All)`, `setUp`, `tearDown`,
				`@Before`, `@After`, `@BeforeClass`, `@AfterClass`,
				`(?i)fixture`, `t\.Cleanup\(`, `TestMain\(`,
			}),
			GroupGrouping: compileAll([]string{
				`describe\s*\(`, `suite\s*\(`, `class\s+\w+Test`,
				`@Nested`, `context\s*\(`, `mod\s+tests`,
				`t\.Run\(`, `subtest`,
			}),
			GroupNestedGroup: compileAll([]string{
				`describe\s*\([\s\S]+describe\s*\(`,
				`@Nested`,
				`t\.Run\([\s\S]+t\.Run\(`,
				`context\s*\([\s\S]+context\s*\(`,
			}),
			GroupDataDriven: compileAll([]string{
				`test\.each`, `@TestFactory`, `@DataProvider`,
				`(?i)testdata`, `@UseDataProvider`, `@CsvSource`,
				`@ValueSource`, `(?i)table[-_\s]driven`,
				`\[\]struct\s*\{`,
			}),
			GroupIntegration: compileAll([]string{
				`(?i)integration`, `(?i)end[-_\s]to[-_\s]end`, `(?i)\be2e\b`,
				`(?i)system\s+test`, `TestIntegration`,
			}),
			GroupPerformance: compileAll([]string{
				`(?i)benchmark`, `(?i)\bperf\b`, `(?i)performance`,
				`(?i)timing`, `(?i)elapsed`, `Stopwatch`, `time\.time`,
				`System\.nanoTime`, `performance\.now`, `hrtime`,
				`std::chrono`, `func Benchmark\w+\(`,
			}),
			GroupSecurity: compileAll([]string{
				`(?i)security`, `(?i)vulnerab`, `(?i)exploit`, `(?i)attack`,
				`(?i)injection`, `(?i)sanitiz`, `(?i)\bXSS\b`, `(?i)\bCSRF\b`,
				`(?i)authenticat`, `(?i)authoriz`, `(?i)permission`,
				`(?i)privilege`,
			}),
			GroupAssertions: compileAll([]string{
				`assert`, `expect\(.*\)\.to`, `should\.`,
				`assertEquals`, `assertTrue`, `assertFalse`, `verify\(`,
				`ASSERT_`, `EXPECT_`, `BOOST_(?:CHECK|REQUIRE|TEST)`,
				`assert!`, `assert_eq!`, `assert_ne!`,
				`require\.\w+\(`, `\.Equal\(`, `\.NoError\(`,
			}),
			GroupEdgeCaseVocab: compileAll([]string{
				`(?i)edge\s*case`, `(?i)boundary`, `(?i)\bempty\b`,
				`(?i)\bnull\b`, `(?i)\bnil\b`, `(?i)\bnone\b`, `(?i)undefined`,
				`(?i)exception`, `(?i)\berror\b`, `(?i)\bthrow\b`, `(?i)\bpanic\b`,
				`(?i)overflow`, `(?i)underflow`, `(?i)\bzero\b`, `(?i)\bNaN\b`,
				`(?i)max\s*value`, `(?i)min\s*value`, `INT_MAX`, `INT_MIN`,
				`(?i)special\s*character`, `(?i)unicode`, `(?i)\butf\b`,
				`(?i)(?:very|too)\s*(?:large|small|long|short)`,
			}),
			GroupPathExercise: compileAll([]string{
				`(?i)\bbranch\b`, `(?i)\bpath\b`, `(?i)\bcase\b`, `(?i)\bwhen\b`,
				`(?i)\bif\b`, `(?i)\belse\b`, `(?i)\bloop\b`, `(?i)\binvalid\b`,
				`(?i)\bvalid\b`, `(?i)\bfail`, `(?i)\bsucce`,
			}),
			GroupCoverageVocab: compileAll([]string{
				`(?i)edge\s*case`, `(?i)boundary`, `(?i)scenario`, `(?i)coverage`,
			}),
			GroupPerfConcern: compileAll([]string{
				`(?i)performance`, `(?i)timeout`, `(?i)\bslow\b`, `(?i)optimi[sz]e`,
				`(?i)efficien`, `(?i)complexity`, `(?i)stack\s+overflow`,
			}),
		},
		edges: map[EdgeCategory][]*regexp.Regexp{
			EdgeNullEmpty: compileAll([]string{
				`(?i)\bnull\b`, `(?i)\bnil\b`, `(?i)\bnone\b`, `(?i)\bempty\b`,
				`(?i)undefined`, `''`, `""`, `\[\]`,
			}),
			EdgeBoundary: compileAll([]string{
				`(?i)boundary`, `(?i)\blimit\b`, `(?i)\bmin\b`, `(?i)\bmax\b`,
				`(?i)\bzero\b`, `(?i)negative`, `(?i)\bupper\b`, `(?i)\blower\b`,
			}),
			EdgeError: compileAll([]string{
				`(?i)exception`, `(?i)\berror\b`, `(?i)\bthrow\b`, `(?i)invalid`,
				`(?i)\bfail`, `(?i)\bpanic\b`, `(?i)\bcrash\b`,
			}),
			EdgeLargeInput: compileAll([]string{
				`(?i)\blarge\b`, `(?i)\bbig\b`, `(?i)\bhuge\b`, `(?i)overflow`,
				`(?i)\bmany\b`, `(?i)multiple`, `(?i)\blong\b`,
			}),
			EdgeSpecialChars: compileAll([]string{
				`(?i)special`, `(?i)character`, `(?i)symbol`, `(?i)unicode`,
				`(?i)\butf\b`, `(?i)escape`, `(?i)non-ascii`,
			}),
			EdgeConcurrency: compileAll([]string{
				`(?i)concurren`, `(?i)parallel`, `(?i)\brace\b`, `(?i)deadlock`,
				`(?i)\bthread\b`, `(?i)\basync\b`, `(?i)\bawait\b`, `(?i)goroutine`,
			}),
			EdgeSecurity: compileAll([]string{
				`(?i)security`, `(?i)injection`, `(?i)sanitiz`, `(?i)exploit`,
				`(?i)authenticat`, `(?i)authoriz`, `(?i)\bXSS\b`,
			}),
			EdgePerformance: compileAll([]string{
				`(?i)timeout`, `(?i)\bslow\b`, `(?i)\bfast\b`, `(?i)performance`,
				`(?i)benchmark`,
			}),
		},
		asserts: map[AssertionType][]*regexp.Regexp{
			AssertEquality: compileAll([]string{
				`(?i)\bequals?\b`, `(?i)\bsame\b`, `(?i)identical`,
				`(?i)matches`, `assert_eq!`, `\.Equal\(`, `assertEquals`,
			}),
			AssertBoolean: compileAll([]string{
				`(?i)\btrue\b`, `(?i)\bfalse\b`, `assertTrue`, `assertFalse`,
				`(?i)isTrue`, `(?i)isFalse`, `\.True\(`, `\.False\(`,
			}),
			AssertNullCheck: compileAll([]string{
				`(?i)\bnull\b`, `(?i)\bnone\b`, `(?i)\bnil\b`, `(?i)undefined`,
				`assertNull`, `assertNotNull`, `\.Nil\(`, `\.NotNil\(`,
			}),
			AssertException: compileAll([]string{
				`(?i)\bthrows?\b`, `(?i)exception`, `assertThrows`,
				`(?i)\braises\b`, `(?i)\bcatch\b`, `(?i)\btry\b`,
				`\.Error\(`, `\.Panics\(`,
			}),
			AssertCollect: compileAll([]string{
				`(?i)\bcontains\b`, `(?i)\bsize\b`, `(?i)\blength\b`,
				`(?i)\bempty\b`, `(?i)\belements\b`, `\.Len\(`, `\.ElementsMatch\(`,
			}),
		},
		aspects: map[QualityAspect][]*regexp.Regexp{
			AspectExactMatch: compileAll([]string{
				`assertEquals`, `assert_eq!`, `\.Equal\(`, `toEqual\(`,
				`toBe\(`, `ASSERT_EQ`, `EXPECT_EQ`, `assert\s+\w+\s*==`,
				`is_equal`, `areEqual`,
			}),
			AspectTypeCheck: compileAll([]string{
				`instanceof`, `typeof`, `isinstance`, `isInstanceOf`,
				`assertInstanceOf`, `is_a\b`, `\.IsType\(`, `reflect\.TypeOf`,
			}),
			AspectCollection: compileAll([]string{
				`(?i)assert\w*contains`, `toContain\(`, `\.Contains\(`,
				`\.Len\(`, `hasSize`, `assert\s+len\(`, `ElementsMatch`,
				`EXPECT_THAT`,
			}),
			AspectException: compileAll([]string{
				`assertThrows`, `pytest\.raises`, `assertRaises`, `toThrow\(`,
				`#\[should_panic\]`, `EXPECT_THROW`, `\.Panics\(`, `\.Error\(`,
				`\.ErrorIs\(`,
			}),
			AspectCustomMessage: compileAll([]string{
				`assert\s+[^,\n]+,\s*["']`, `assert\w*\([^)]*,\s*["'][^"']+["']\s*\)`,
				`\.withFailMessage`, `"expected`, `'expected`, `msg\s*=`,
			}),
		},
		languages: map[m.Language][]*regexp.Regexp{
			m.LanguagePython: compileAll([]string{
				`def\s+\w+`, `import\s+`, `from\s+\w+\s+import`, `pytest`, `unittest`,
			}),
			m.LanguageJavaScript: compileAll([]string{
				`function\s+`, `const\s+`, `let\s+`, `=>\s*\{`, `jest`, `mocha`,
			}),
			m.LanguageTypeScript: compileAll([]string{
				`interface\s+`, `type\s+\w+\s*=`, `:\s*(?:string|number|boolean)\b`, `<\w+>\(`,
			}),
			m.LanguageJava: compileAll([]string{
				`public\s+class`, `private\s+\w+`, `@Test`, `JUnit`, `void\s+\w+\s*\(`,
			}),
			m.LanguageCpp: compileAll([]string{
				`#include`, `std::`, `template\s*<`, `namespace`, `gtest`,
			}),
			m.LanguageCSharp: compileAll([]string{
				`namespace\s+`, `using\s+\w+;`, `NUnit`, `xUnit`, `\[Fact\]`,
			}),
			m.LanguageRust: compileAll([]string{
				`fn\s+\w+`, `let\s+mut`, `impl\s+`, `pub\s+fn`, `#\[test\]`,
			}),
			m.LanguageGo: compileAll([]string{
				`func\s+\w+`, `package\s+\w+`, `import\s+\(`, `func Test\w+\(t \*testing\.T\)`, `:=`,
			}),
			m.LanguageRuby: compileAll([]string{
				`describe\s+`, `it\s+['"]`, `require\s+['"]`, `rspec`, `\bend\b`,
			}),
			m.LanguageBash: compileAll([]string{
				`\[\[`, `\$\(`, `\$\{`, `function\s+\w+\s*\(\)`, `#!/`,
			}),
		},
		complexity: compileAll([]string{
			`\bif\b`, `\belse\b`, `\bfor\b`, `\bwhile\b`,
			`\bswitch\b`, `\bcase\b`, `\bmatch\b`,
			`\btry\b`, `\bcatch\b`, `\bexcept\b`, `\brescue\b`,
			`&&`, `\|\|`, `\band\b`, `\bor\b`,
		}),
		stopWords: buildStopWords(),
	}
}

func buildStopWords() map[string]struct{} {
	words := []string{
		"the", "and", "for", "with", "that", "this", "but", "not", "are",
		"was", "were", "has", "have", "had", "will", "would", "shall",
		"should", "can", "could", "may", "might", "must", "from", "into",
		"when", "then", "else", "all", "any", "each", "its", "their",
		"implement", "create", "make", "write", "function", "method",
		"class", "code", "test", "tests", "using", "following",
	}

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}

	return set
}
