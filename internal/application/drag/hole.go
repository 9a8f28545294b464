package drag

import (
	"planner/internal/application/commands"
	"planner/internal/application/history"
	"planner/internal/domain"
	"planner/internal/ports"
)

// HoleProvider places a wall aperture. Nothing is created while dragging; on
// release the object is placed and bound to the nearest wall in one history entry.
type HoleProvider struct {
	deps Deps
}

var _ ports.DragProcessor = (*HoleProvider)(nil)

func NewHoleProvider(deps Deps) *HoleProvider {
	return &HoleProvider{deps: deps}
}

func (p *HoleProvider) ObjectDragBegan(g *domain.Gesture, obj *domain.ObjectDefinition) {
	p.deps.Tools.Activate(ports.ToolHighlightNearestWall)
	s := newSession(p.deps, g, obj)
	s.subs.Add(
		g.OnMove(func(ev domain.PointerEvent) { s.follow(ev) }),
		g.OnEnd(func(ev domain.PointerEvent) { p.end(s, ev) }),
	)
}

func (p *HoleProvider) end(s *session, ev domain.PointerEvent) {
	defer s.subs.Clear()

	p.deps.Preview.Hide()
	p.deps.Tools.Activate(ports.ToolSelection)

	var wall *domain.Wall
	hit, ok := p.deps.Plan.Raycast(ev.Position)
	floor := p.deps.Scene.CurrentFloor()
	if ok {
		wall = p.deps.Scene.NearestWall(floor, hit.PlanXY())
	}
	if wall == nil {
		p.deps.logger().Info("aperture rejected", "object", s.object.ID, "reason", "no wall nearby")
		p.deps.Notifier.Notify(NoticeNoWall)
		return
	}

	place := commands.NewPlaceObjectCommand(s.object, domain.Vec3{}, floor, p.deps.Pool, p.deps.Scene)
	bind, err := commands.NewBindToWallCommand(place, hit.FlipYZ().WithY(0), wall)
	if err != nil {
		p.deps.logger().Error("failed to bind aperture", "object", s.object.ID, "error", err)
		return
	}
	p.deps.History.Execute(history.NewCompositeCommand(place, bind))
	p.deps.logger().Debug("aperture placed", "object", s.object.ID, "wall", wall.ID)
}
