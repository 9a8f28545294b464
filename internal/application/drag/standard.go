package drag

import (
	"planner/internal/domain"
	"planner/internal/ports"
)

// Standard2D places an object on the plan view
type Standard2D struct {
	deps Deps
}

var _ ports.DragProcessor = (*Standard2D)(nil)

func NewStandard2D(deps Deps) *Standard2D {
	return &Standard2D{deps: deps}
}

func (p *Standard2D) ObjectDragBegan(g *domain.Gesture, obj *domain.ObjectDefinition) {
	s := newSession(p.deps, g, obj)
	s.subs.Add(
		g.OnMove(func(ev domain.PointerEvent) { p.move(s, ev) }),
		g.OnEnd(func(domain.PointerEvent) { p.end(s) }),
	)
}

func (p *Standard2D) move(s *session, ev domain.PointerEvent) {
	if !s.follow(ev) {
		return
	}
	hit, ok := p.deps.Plan.Raycast(ev.Position)
	if !ok {
		return
	}
	s.place(hit.FlipYZ().WithY(0))
}

func (p *Standard2D) end(s *session) {
	p.deps.Preview.Hide()
	p.deps.Tools.Activate(ports.ToolSelection)
	s.finish()
}

// FreeShape2D is Standard2D over a private copy of the free-shape template
type FreeShape2D struct {
	std *Standard2D
}

var _ ports.DragProcessor = (*FreeShape2D)(nil)

func NewFreeShape2D(deps Deps) *FreeShape2D {
	return &FreeShape2D{std: NewStandard2D(deps)}
}

// ObjectDragBegan clones obj so no two placements share a definition
func (p *FreeShape2D) ObjectDragBegan(g *domain.Gesture, obj *domain.ObjectDefinition) {
	p.std.ObjectDragBegan(g, obj.Clone())
}

// Standard3D places an object on the ground plane of the 3D view. The instance
// renders on the dragged layer until the gesture ends.
type Standard3D struct {
	deps Deps
}

var _ ports.DragProcessor = (*Standard3D)(nil)

func NewStandard3D(deps Deps) *Standard3D {
	return &Standard3D{deps: deps}
}

func (p *Standard3D) ObjectDragBegan(g *domain.Gesture, obj *domain.ObjectDefinition) {
	s := newSession(p.deps, g, obj)
	s.subs.Add(
		g.OnMove(func(ev domain.PointerEvent) { p.move(s, ev) }),
		g.OnEnd(func(domain.PointerEvent) { p.end(s) }),
	)
}

func (p *Standard3D) move(s *session, ev domain.PointerEvent) {
	if !s.follow(ev) {
		return
	}
	hit, ok := p.deps.Ground.Raycast(ev.Position)
	if !ok {
		return
	}
	if inst := s.place(hit); inst != nil {
		inst.Layer.Set(domain.LayerDragged)
	}
}

func (p *Standard3D) end(s *session) {
	p.deps.Preview.Hide()
	if s.command != nil {
		if inst := s.command.Instance(); inst != nil {
			inst.Layer.Set(domain.LayerObject)
		}
	}
	s.finish()
}
