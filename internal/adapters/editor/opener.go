// Package editor launches the user's editor on persisted object bodies.
package editor

import (
	"fmt"
	"os"
	"os/exec"

	"planner/internal/ports"
)

// fallbackEditors are tried in order when neither $EDITOR nor $VISUAL is set
var fallbackEditors = []string{"nvim", "vim", "vi", "nano", "code"}

// Opener implements ports.EditorOpener
type Opener struct {
	editor   string
	lookPath func(string) (string, error)
}

var _ ports.EditorOpener = (*Opener)(nil)

// Option configures an Opener
type Option func(*Opener)

// WithEditor pins the editor command instead of reading the environment
func WithEditor(name string) Option {
	return func(o *Opener) { o.editor = name }
}

// NewOpener creates a new editor opener
func NewOpener(opts ...Option) *Opener {
	o := &Opener{lookPath: exec.LookPath}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OpenFile opens an object body in the user's preferred editor and waits for it
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for editing the body at path, wired to the
// terminal so bubbletea's ExecProcess can hand over the screen. Bodies are
// never created here; a missing file is an error.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("object body: %w", err)
	}

	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

func (o *Opener) findEditor() string {
	if o.editor != "" {
		return o.editor
	}
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	for _, name := range fallbackEditors {
		if path, err := o.lookPath(name); err == nil {
			return path
		}
	}
	return ""
}
