package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/featurecheck/internal/analyzer"
	"github.com/dshills/featurecheck/internal/schema"
)

func TestEnhancedPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"app.py", "app.enhanced.py"},
		{"dir/tool.js", "dir/tool.enhanced.js"},
		{"noext", "noext.enhanced"},
	}
	for _, c := range cases {
		if got := enhancedPath(c.in); got != c.want {
			t.Errorf("enhancedPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLoadStore_BuiltinOnly(t *testing.T) {
	store, err := loadStore("")
	require.NoError(t, err)
	assert.Len(t, store.Current().Archetypes(), 4)
}

func TestLoadStore_ExternalDir(t *testing.T) {
	store, err := loadStore(filepath.Join("..", "..", "testdata", "registry"))
	require.NoError(t, err)
	_, ok := store.Current().Lookup("notebook")
	assert.True(t, ok, "external notebook archetype not loaded")
	_, ok = store.Current().Lookup("gui_app")
	assert.True(t, ok, "builtin archetypes must survive external load")
}

func TestLoadStore_MissingDir(t *testing.T) {
	_, err := loadStore(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errConfig))
}

func TestAnalyzeFile_TkinterFixture(t *testing.T) {
	store, err := loadStore("")
	require.NoError(t, err)
	anl := analyzer.New(store)

	report, err := analyzeFile(anl, filepath.Join("..", "..", "testdata", "snippets", "tkinter_app.py"), analyzeOptions{})
	require.NoError(t, err)

	assert.Equal(t, schema.Archetype("gui_app"), report.Result.Archetype)
	require.NotEmpty(t, report.Result.Applied)
	assert.Equal(t, "close_button", report.Result.Applied[0].Name)
	assert.Equal(t, schema.ApplyApplied, report.Result.Applied[0].Status)
}

func TestAnalyzeFile_Write(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "game.py")
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "snippets", "pygame_game.py"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, data, 0644))

	store, err := loadStore("")
	require.NoError(t, err)
	anl := analyzer.New(store)

	report, err := analyzeFile(anl, src, analyzeOptions{write: true})
	require.NoError(t, err)
	require.NotEmpty(t, report.Result.Applied)

	enhanced, err := os.ReadFile(filepath.Join(dir, "game.enhanced.py"))
	require.NoError(t, err)
	assert.Contains(t, string(enhanced), "def exit_game():")
	// The original file is never touched.
	after, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(after))
}

func TestAnalyzeFile_ForcedArchetype(t *testing.T) {
	store, err := loadStore("")
	require.NoError(t, err)
	anl := analyzer.New(store)

	report, err := analyzeFile(anl, filepath.Join("..", "..", "testdata", "snippets", "tkinter_app.py"),
		analyzeOptions{archetype: "web_app"})
	require.NoError(t, err)
	assert.Equal(t, schema.Archetype("web_app"), report.Result.Archetype)
}
