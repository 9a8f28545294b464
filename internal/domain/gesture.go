package domain

// PointerEvent is one sample of a drag gesture in screen coordinates
type PointerEvent struct {
	Position Vec2
	OverUI   bool // pointer is above a UI panel, not the scene
}

// Gesture is a stream of move events bounded by a single end event.
// Events after End are dropped.
type Gesture struct {
	Origin Vec2
	last   PointerEvent
	moved  Signal[PointerEvent]
	ended  Signal[PointerEvent]
	done   bool
}

func NewGesture(origin Vec2) *Gesture {
	return &Gesture{Origin: origin, last: PointerEvent{Position: origin}}
}

func (g *Gesture) OnMove(fn func(PointerEvent)) *Subscription {
	return g.moved.Subscribe(fn)
}

func (g *Gesture) OnEnd(fn func(PointerEvent)) *Subscription {
	return g.ended.Subscribe(fn)
}

func (g *Gesture) Move(ev PointerEvent) {
	if g.done {
		return
	}
	g.last = ev
	g.moved.Emit(ev)
}

// End completes the gesture at the last known pointer position
func (g *Gesture) End() {
	if g.done {
		return
	}
	g.done = true
	g.ended.Emit(g.last)
	g.moved.Reset()
	g.ended.Reset()
}

func (g *Gesture) Done() bool { return g.done }

// Last returns the most recent pointer event, or the origin before any move
func (g *Gesture) Last() PointerEvent { return g.last }
