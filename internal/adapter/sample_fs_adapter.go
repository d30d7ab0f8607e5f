// Package adapter provides filesystem, execution and storage adapters
// around the quality assessment domain.
package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	m "testgrade.dev/pkg/testgrade/internal/model"
)

// NamedSample pairs a sample with the test file it was loaded from.
type NamedSample struct {
	Path   m.Path
	Sample m.Sample
}

// SampleFSAdapter abstracts loading test samples from disk.
type SampleFSAdapter interface {
	// LoadSamples reads each path (files, or directories expanded to the
	// test files beneath them) into samples carrying the shared context.
	LoadSamples(ctx context.Context, paths []m.Path, taskDescription string, implementationPath m.Path, language m.Language) ([]NamedSample, error)
	// ReadFile returns the content of one file.
	ReadFile(ctx context.Context, path m.Path) (string, error)
}

// LocalSampleFSAdapter reads samples from the local filesystem.
type LocalSampleFSAdapter struct{}

// NewLocalSampleFSAdapter constructs a LocalSampleFSAdapter.
func NewLocalSampleFSAdapter() *LocalSampleFSAdapter {
	return &LocalSampleFSAdapter{}
}

// extensionLanguages maps file extensions to language tags.
var extensionLanguages = map[string]m.Language{
	".go":   m.LanguageGo,
	".py":   m.LanguagePython,
	".js":   m.LanguageJavaScript,
	".mjs":  m.LanguageJavaScript,
	".ts":   m.LanguageTypeScript,
	".java": m.LanguageJava,
	".cs":   m.LanguageCSharp,
	".cpp":  m.LanguageCpp,
	".cc":   m.LanguageCpp,
	".cxx":  m.LanguageCpp,
	".rs":   m.LanguageRust,
	".rb":   m.LanguageRuby,
	".sh":   m.LanguageBash,
}

// LanguageForPath infers a language tag from a file extension, falling
// back to LanguageUnknown (detection then happens on content).
func LanguageForPath(path m.Path) m.Language {
	if lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(string(path)))]; ok {
		return lang
	}

	return m.LanguageUnknown
}

// LoadSamples implements SampleFSAdapter.
func (a *LocalSampleFSAdapter) LoadSamples(ctx context.Context, paths []m.Path, taskDescription string, implementationPath m.Path, language m.Language) ([]NamedSample, error) {
	implementation := ""

	if implementationPath != "" {
		content, err := a.ReadFile(ctx, implementationPath)
		if err != nil {
			return nil, fmt.Errorf("read implementation: %w", err)
		}

		implementation = content
	}

	files, err := a.expand(paths)
	if err != nil {
		return nil, err
	}

	samples := make([]NamedSample, 0, len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := a.ReadFile(ctx, file)
		if err != nil {
			return nil, err
		}

		sampleLanguage := language
		if sampleLanguage == "" || sampleLanguage == m.LanguageUnknown {
			sampleLanguage = LanguageForPath(file)
		}

		samples = append(samples, NamedSample{
			Path: file,
			Sample: m.Sample{
				SourceText:           content,
				Language:             sampleLanguage,
				TaskDescription:      taskDescription,
				ImplementationSource: implementation,
			},
		})
	}

	return samples, nil
}

// ReadFile implements SampleFSAdapter.
func (a *LocalSampleFSAdapter) ReadFile(ctx context.Context, path m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := os.ReadFile(string(path))
	if err != nil {
		slog.Error("failed to read file", "path", path, "error", err)
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return string(content), nil
}

// expand turns directory arguments into the test files beneath them.
func (a *LocalSampleFSAdapter) expand(paths []m.Path) ([]m.Path, error) {
	var files []m.Path

	for _, path := range paths {
		info, err := os.Stat(string(path))
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.Walk(string(path), func(entry string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || LanguageForPath(m.Path(entry)) == m.LanguageUnknown {
				return nil
			}

			files = append(files, m.Path(entry))

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}

	return files, nil
}
