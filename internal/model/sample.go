// Package model defines the data structures for test quality assessment.
package model

// Path represents a file system path.
type Path string

// Language identifies the runtime a test sample targets.
type Language string

const (
	// LanguageUnknown is used when no tag was supplied and detection found nothing.
	LanguageUnknown Language = "unknown"
	// LanguageGo identifies Go test code.
	LanguageGo Language = "go"
	// LanguagePython identifies Python test code.
	LanguagePython Language = "python"
	// LanguageJavaScript identifies JavaScript test code.
	LanguageJavaScript Language = "javascript"
	// LanguageTypeScript identifies TypeScript test code.
	LanguageTypeScript Language = "typescript"
	// LanguageJava identifies Java test code.
	LanguageJava Language = "java"
	// LanguageCSharp identifies C# test code.
	LanguageCSharp Language = "csharp"
	// LanguageCpp identifies C++ test code.
	LanguageCpp Language = "cpp"
	// LanguageRust identifies Rust test code.
	LanguageRust Language = "rust"
	// LanguageRuby identifies Ruby test code.
	LanguageRuby Language = "ruby"
	// LanguageBash identifies shell test code.
	LanguageBash Language = "bash"
)

// Languages lists every supported language tag.
func Languages() []Language {
	return []Language{
		LanguageGo, LanguagePython, LanguageJavaScript, LanguageTypeScript,
		LanguageJava, LanguageCSharp, LanguageCpp, LanguageRust,
		LanguageRuby, LanguageBash,
	}
}

// ParseLanguage maps a user-supplied tag onto a Language. Unrecognized
// tags map to LanguageUnknown rather than failing.
func ParseLanguage(tag string) Language {
	switch tag {
	case "go", "golang":
		return LanguageGo
	case "python", "py":
		return LanguagePython
	case "javascript", "js":
		return LanguageJavaScript
	case "typescript", "ts":
		return LanguageTypeScript
	case "java":
		return LanguageJava
	case "csharp", "cs", "c#":
		return LanguageCSharp
	case "cpp", "c++", "cxx":
		return LanguageCpp
	case "rust", "rs":
		return LanguageRust
	case "ruby", "rb":
		return LanguageRuby
	case "bash", "sh", "shell":
		return LanguageBash
	}

	return LanguageUnknown
}

// Sample is the immutable input to one quality assessment call.
//
// SourceText is the test code under assessment. TaskDescription and
// ImplementationSource are optional context; individual metrics fall back
// to documented neutral scores when they are empty.
type Sample struct {
	SourceText           string
	Language             Language
	TaskDescription      string
	ImplementationSource string
}

// HasTaskDescription reports whether optional task context was supplied.
func (s Sample) HasTaskDescription() bool {
	return s.TaskDescription != ""
}

// HasImplementation reports whether optional implementation context was supplied.
func (s Sample) HasImplementation() bool {
	return s.ImplementationSource != ""
}
