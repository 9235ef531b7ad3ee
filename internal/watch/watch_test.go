package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, files ...string) *Watcher {
	t.Helper()
	w, err := NewWatcher(files...)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	return w
}

func TestWatcherDetectsChange(t *testing.T) {
	dir := t.TempDir()
	deckFile := filepath.Join(dir, "deck.toml")
	require.NoError(t, os.WriteFile(deckFile, []byte("[deck]\n"), 0644))

	w := startWatcher(t, deckFile)
	require.NoError(t, os.WriteFile(deckFile, []byte("[deck]\nname = \"x\"\n"), 0644))

	select {
	case change := <-w.Changes:
		abs, _ := filepath.Abs(deckFile)
		assert.Equal(t, abs, change.File)
		assert.Equal(t, ChangeModified, change.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcherDetectsRemoval(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "keywords.toml")
	require.NoError(t, os.WriteFile(lib, nil, 0644))

	w := startWatcher(t, lib)
	require.NoError(t, os.Remove(lib))

	select {
	case change := <-w.Changes:
		assert.Equal(t, ChangeRemoved, change.Kind)
		assert.Equal(t, "removed", change.Kind.String())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for removal event")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	deckFile := filepath.Join(dir, "deck.toml")
	require.NoError(t, os.WriteFile(deckFile, nil, 0644))

	w := startWatcher(t, deckFile)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))

	select {
	case change := <-w.Changes:
		t.Errorf("unexpected change event: %+v", change)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNewWatcherDeduplicates(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "deck.toml")

	w, err := NewWatcher(f, f)
	require.NoError(t, err)
	defer w.Stop()
	assert.Len(t, w.Files, 1)
}
