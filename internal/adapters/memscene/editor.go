package memscene

import (
	"io"
	"log/slog"
	"slices"

	"planner/internal/domain"
	"planner/internal/ports"
)

// Preview tracks the floating thumbnail shown while dragging from the catalogue
type Preview struct {
	object  *domain.ObjectDefinition
	screen  domain.Vec2
	visible bool
}

var _ ports.Preview = (*Preview)(nil)

func NewPreview() *Preview { return &Preview{} }

func (p *Preview) Display(obj *domain.ObjectDefinition, screen domain.Vec2) {
	p.object = obj
	p.screen = screen
	p.visible = true
}

func (p *Preview) Move(screen domain.Vec2) { p.screen = screen }

func (p *Preview) Hide() { p.visible = false }

func (p *Preview) Visible() bool { return p.visible }

// Object returns the object last displayed
func (p *Preview) Object() *domain.ObjectDefinition { return p.object }

func (p *Preview) Position() domain.Vec2 { return p.screen }

// Notices records user-facing messages in order
type Notices struct {
	messages []string
	logger   *slog.Logger
}

var _ ports.Notifier = (*Notices)(nil)

func NewNotices(logger *slog.Logger) *Notices {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Notices{logger: logger}
}

func (n *Notices) Notify(message string) {
	n.messages = append(n.messages, message)
	n.logger.Info("notice", "message", message)
}

func (n *Notices) Messages() []string { return slices.Clone(n.messages) }

// Drain returns the pending messages and clears them
func (n *Notices) Drain() []string {
	out := n.messages
	n.messages = nil
	return out
}

// Tools holds the active editor tool
type Tools struct {
	active  ports.Tool
	history []ports.Tool
}

var _ ports.ToolActivator = (*Tools)(nil)

func NewTools() *Tools { return &Tools{active: ports.ToolSelection} }

func (t *Tools) Activate(tool ports.Tool) {
	t.active = tool
	t.history = append(t.history, tool)
}

func (t *Tools) Active() ports.Tool { return t.active }

// History returns every activation in order
func (t *Tools) History() []ports.Tool { return slices.Clone(t.history) }
