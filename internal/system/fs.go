package system

import (
	"os"
	"os/exec"

	"aura/internal/aura"
)

// Files is the local-disk implementation of the filesystem port.
type Files struct{}

func NewFiles() *Files { return &Files{} }

var _ aura.Filesystem = (*Files)(nil)

func (f *Files) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (f *Files) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (f *Files) Remove(path string) error { return os.Remove(path) }

func (f *Files) Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// OpenInShell shows the path in the user's file manager.
func (f *Files) OpenInShell(path string) error {
	cmd := exec.Command("xdg-open", path)
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() { _ = cmd.Wait() }()

	return nil
}
