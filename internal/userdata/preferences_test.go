package userdata

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/agentx-labs/create-lit-component/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cmdName = "create-lit-component"

func stores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "nested", PreferencesFile)),
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			written, err := SavePreferences(store, cmdName, options.Set{options.Scope: "foo"})
			require.NoError(t, err)
			assert.True(t, written)

			prefs, err := LoadPreferences(store, cmdName)
			require.NoError(t, err)
			assert.Equal(t, Preferences{Scope: "@foo", UseScope: true}, prefs)
		})
	}
}

func TestLoadPreferencesMissing(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			prefs, err := LoadPreferences(store, cmdName)
			require.NoError(t, err)
			assert.Equal(t, Preferences{}, prefs)

			raw, err := store.Get("never-stored")
			require.NoError(t, err)
			assert.Empty(t, raw)
		})
	}
}

func TestSavePreferencesWithoutScope(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			written, err := SavePreferences(store, cmdName, options.Set{
				options.Name:        "my-card",
				options.Description: "a card",
				options.UseScope:    false,
			})
			require.NoError(t, err)
			assert.False(t, written)

			raw, err := store.Get(cmdName)
			require.NoError(t, err)
			assert.Empty(t, raw)
		})
	}
}

func TestSavePreferencesNeverPersistsOtherOptions(t *testing.T) {
	store := NewMemoryStore()
	_, err := SavePreferences(store, cmdName, options.Set{
		options.Name:        "my-card",
		options.Scope:       "@acme",
		options.Description: "a card",
		options.Install:     true,
		options.Silent:      true,
	})
	require.NoError(t, err)

	raw, err := store.Get(cmdName)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{options.Scope: "@acme", options.UseScope: true}, raw)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), PreferencesFile)

	first := NewFileStore(path)
	require.NoError(t, first.Set(cmdName, map[string]any{options.Scope: "@acme", options.UseScope: true}))
	require.NoError(t, first.Set("other-command", map[string]any{options.Scope: "@other"}))

	second := NewFileStore(path)
	prefs, err := LoadPreferences(second, cmdName)
	require.NoError(t, err)
	assert.Equal(t, "@acme", prefs.Scope)
	assert.True(t, prefs.UseScope)

	other, err := second.Get("other-command")
	require.NoError(t, err)
	assert.Equal(t, "@other", other[options.Scope])
}

func TestFileStoreDelete(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), PreferencesFile))
	require.NoError(t, store.Delete(cmdName))

	require.NoError(t, store.Set(cmdName, map[string]any{options.Scope: "@acme"}))
	require.NoError(t, store.Delete(cmdName))

	raw, err := store.Get(cmdName)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestFileStorePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	path := filepath.Join(t.TempDir(), PreferencesFile)
	store := NewFileStore(path)
	require.NoError(t, store.Set(cmdName, map[string]any{options.Scope: "@acme"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, FilePermSecure, info.Mode().Perm())
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), PreferencesFile)
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml :::\n\t- ["), 0600))

	_, err := NewFileStore(path).Get(cmdName)
	assert.Error(t, err)
}
