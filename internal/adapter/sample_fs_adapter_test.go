package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

func TestLanguageForPath(t *testing.T) {
	require.Equal(t, m.LanguageGo, LanguageForPath("pkg/cart_test.go"))
	require.Equal(t, m.LanguagePython, LanguageForPath("test_cart.py"))
	require.Equal(t, m.LanguageJavaScript, LanguageForPath("cart.test.mjs"))
	require.Equal(t, m.LanguageUnknown, LanguageForPath("notes.txt"))
}

func TestLoadSamplesExpandsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_a.py"), []byte("def test_a(): pass"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_test.go"), []byte("package b"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0o600))

	samples, err := NewLocalSampleFSAdapter().LoadSamples(context.Background(), []m.Path{m.Path(dir)}, "", "", m.LanguageUnknown)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	byPath := map[m.Path]m.Sample{}
	for _, s := range samples {
		byPath[s.Path] = s.Sample
	}

	require.Equal(t, m.LanguagePython, byPath[m.Path(filepath.Join(dir, "test_a.py"))].Language)
	require.Equal(t, m.LanguageGo, byPath[m.Path(filepath.Join(dir, "b_test.go"))].Language)
}

func TestLoadSamplesAttachesSharedContext(t *testing.T) {
	dir := t.TempDir()
	testPath := filepath.Join(dir, "test_a.py")
	implPath := filepath.Join(dir, "impl.py")
	require.NoError(t, os.WriteFile(testPath, []byte("def test_a(): pass"), 0o600))
	require.NoError(t, os.WriteFile(implPath, []byte("def a(): return 1"), 0o600))

	samples, err := NewLocalSampleFSAdapter().LoadSamples(
		context.Background(),
		[]m.Path{m.Path(testPath)},
		"implement a",
		m.Path(implPath),
		m.LanguageUnknown,
	)
	require.NoError(t, err)
	require.Len(t, samples, 1)

	require.Equal(t, "implement a", samples[0].Sample.TaskDescription)
	require.Equal(t, "def a(): return 1", samples[0].Sample.ImplementationSource)
}

func TestLoadSamplesExplicitLanguageOverridesExtension(t *testing.T) {
	dir := t.TempDir()
	testPath := filepath.Join(dir, "test_a.py")
	require.NoError(t, os.WriteFile(testPath, []byte("def test_a(): pass"), 0o600))

	samples, err := NewLocalSampleFSAdapter().LoadSamples(context.Background(), []m.Path{m.Path(testPath)}, "", "", m.LanguageRuby)
	require.NoError(t, err)
	require.Equal(t, m.LanguageRuby, samples[0].Sample.Language)
}

func TestLoadSamplesMissingPathFails(t *testing.T) {
	_, err := NewLocalSampleFSAdapter().LoadSamples(context.Background(), []m.Path{"does/not/exist"}, "", "", m.LanguageUnknown)
	require.Error(t, err)
}

func TestReadFileCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalSampleFSAdapter().ReadFile(ctx, "anything")
	require.ErrorIs(t, err, context.Canceled)
}
