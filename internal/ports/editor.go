package ports

import "os/exec"

// EditorOpener opens persisted object bodies in an external editor
type EditorOpener interface {
	// OpenFile edits an existing body and waits for the editor to exit
	OpenFile(path string) error

	// Command prepares the editor process for bubbletea's ExecProcess.
	// A body that does not exist yet is an error.
	Command(path string) (*exec.Cmd, error)
}
