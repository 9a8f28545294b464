// Package drag turns catalogue drag gestures into placement commands.
package drag

import (
	"io"
	"log/slog"

	"planner/internal/application/commands"
	"planner/internal/application/history"
	"planner/internal/domain"
	"planner/internal/ports"
)

// User-facing notices raised while placing
const (
	NoticeNoWall      = "No available walls nearby"
	NoticeCannotAdd3D = "This object cannot be added in 3D mode"
)

// Deps are the editor services every processor works against
type Deps struct {
	Scene    ports.Scene
	Pool     ports.InstancePool
	History  *history.Stack
	Preview  ports.Preview
	Tools    ports.ToolActivator
	Notifier ports.Notifier
	Plan     ports.SnapPlane // plan view, screen to (x, y, 0)
	Ground   ports.SnapPlane // 3D view, screen to (x, 0, z)
	Logger   *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Logger
}

// session is the state of one gesture
type session struct {
	deps    Deps
	object  *domain.ObjectDefinition
	command *commands.PlaceObjectCommand
	subs    domain.Subscriptions
	pointer domain.Vec2
}

func newSession(deps Deps, g *domain.Gesture, obj *domain.ObjectDefinition) *session {
	deps.Preview.Display(obj, g.Origin)
	return &session{deps: deps, object: obj, pointer: g.Origin}
}

// follow moves the preview and reports whether the pointer is over the scene
func (s *session) follow(ev domain.PointerEvent) bool {
	s.pointer = ev.Position
	s.deps.Preview.Move(ev.Position)
	return !ev.OverUI
}

// place creates the placement on the first call and moves it afterwards
func (s *session) place(world domain.Vec3) *domain.ObjectInstance {
	if s.command == nil {
		s.command = commands.NewPlaceObjectCommand(s.object, world, s.deps.Scene.CurrentFloor(), s.deps.Pool, s.deps.Scene)
		s.deps.History.Execute(s.command)
		s.deps.Preview.Hide()
		s.deps.logger().Debug("placement started", "object", s.object.ID, "position", world)
		return s.command.Instance()
	}
	inst := s.command.Instance()
	if inst != nil {
		inst.Position.Set(world)
	}
	return inst
}

// finish freezes the placement and drops the gesture subscriptions
func (s *session) finish() {
	if s.command != nil {
		s.command.RecordFinalState()
		s.deps.logger().Debug("placement finished", "object", s.object.ID, "position", s.command.Position())
	}
	s.subs.Clear()
}
