package system

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura/internal/aura"
)

func TestFilesExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(file, []byte("hi"), 0o644))

	f := NewFiles()

	assert.True(t, f.Exists(file))
	assert.True(t, f.Exists(dir))
	assert.False(t, f.Exists(filepath.Join(dir, "ghost.txt")))
}

func TestFilesIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(file, []byte("hi"), 0o644))

	f := NewFiles()

	assert.True(t, f.IsDir(dir))
	assert.False(t, f.IsDir(file))
	assert.False(t, f.IsDir(filepath.Join(dir, "ghost")))
}

func TestFilesRemove(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(file, []byte("hi"), 0o644))

	f := NewFiles()

	require.NoError(t, f.Remove(file))
	assert.False(t, f.Exists(file))

	assert.Error(t, f.Remove(filepath.Join(dir, "ghost.txt")))
}

func TestFilesHome(t *testing.T) {
	f := NewFiles()
	assert.NotEmpty(t, f.Home())
}

func TestTerminateAllEmptyName(t *testing.T) {
	term := NewTerminator()

	count, err := term.TerminateAll("")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = term.TerminateAll("   ")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTerminateAllNoMatch(t *testing.T) {
	if _, err := exec.LookPath("pgrep"); err != nil {
		t.Skip("pgrep not installed")
	}

	term := NewTerminator()

	count, err := term.TerminateAll("no-such-process-zq9")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLaunchEmptyIdentifier(t *testing.T) {
	l := NewLauncher()
	assert.ErrorIs(t, l.Launch(""), aura.ErrAppNotFound)
}

func TestLaunchExecutable(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not installed")
	}

	l := NewLauncher()
	assert.NoError(t, l.Launch("true"))
}

func TestLaunchUnknownWithoutOpener(t *testing.T) {
	if _, err := exec.LookPath("xdg-open"); err == nil {
		t.Skip("xdg-open present, unknown identifiers go to the desktop opener")
	}

	l := NewLauncher()
	assert.ErrorIs(t, l.Launch("no-such-program-zq9"), aura.ErrAppNotFound)
}
