package history

import (
	"slices"
	"testing"
)

// counter is a tiny observable state shared by test commands
type counter struct {
	value int
	log   []string
}

type addCommand struct {
	c     *counter
	delta int
	name  string
}

func (a *addCommand) Execute() {
	a.c.value += a.delta
	a.c.log = append(a.c.log, "exec:"+a.name)
}

func (a *addCommand) Undo() {
	a.c.value -= a.delta
	a.c.log = append(a.c.log, "undo:"+a.name)
}

func (a *addCommand) Name() string { return a.name }

type recordingObserver struct {
	ops []Operation
}

func (r *recordingObserver) CommandApplied(op Operation, _ Command, _, _ int) {
	r.ops = append(r.ops, op)
}

func TestStackInverseLaw(t *testing.T) {
	c := &counter{}
	s := NewStack()
	cmd := &addCommand{c: c, delta: 5, name: "a"}

	s.Execute(cmd)
	if c.value != 5 {
		t.Fatalf("expected 5 after execute, got %d", c.value)
	}

	s.Undo()
	if c.value != 0 {
		t.Errorf("expected pre-execute state 0 after undo, got %d", c.value)
	}

	s.Redo()
	if c.value != 5 {
		t.Errorf("expected post-execute state 5 after redo, got %d", c.value)
	}
}

func TestStackRedoInvalidation(t *testing.T) {
	c := &counter{}
	s := NewStack()

	s.Execute(&addCommand{c: c, delta: 1, name: "c1"})
	s.Undo()
	s.Execute(&addCommand{c: c, delta: 10, name: "c2"})

	if s.CanRedo() {
		t.Error("expected redo sequence discarded")
	}
	if s.Redo() {
		t.Error("expected redo to be a no-op")
	}
	if c.value != 10 {
		t.Errorf("expected 10, got %d", c.value)
	}
}

func TestStackEmptyNoOps(t *testing.T) {
	s := NewStack()

	if s.Undo() {
		t.Error("expected undo on empty stack to report false")
	}
	if s.Redo() {
		t.Error("expected redo on empty stack to report false")
	}
	s.Execute(nil)
	if u, r := s.Len(); u != 0 || r != 0 {
		t.Errorf("expected empty stack, got %d/%d", u, r)
	}
}

func TestStackOrdering(t *testing.T) {
	c := &counter{}
	s := NewStack()
	s.Execute(&addCommand{c: c, delta: 1, name: "a"})
	s.Execute(&addCommand{c: c, delta: 2, name: "b"})

	s.Undo()
	s.Undo()
	s.Redo()

	want := []string{"exec:a", "exec:b", "undo:b", "undo:a", "exec:a"}
	if !slices.Equal(c.log, want) {
		t.Errorf("expected %v, got %v", want, c.log)
	}
	if u, r := s.Len(); u != 1 || r != 1 {
		t.Errorf("expected 1/1, got %d/%d", u, r)
	}
}

func TestStackMaxDepth(t *testing.T) {
	c := &counter{}
	obs := &recordingObserver{}
	s := NewStack(WithMaxDepth(2), WithObserver(obs))

	for _, name := range []string{"a", "b", "c"} {
		s.Execute(&addCommand{c: c, delta: 1, name: name})
	}

	if !slices.Equal(s.Names(), []string{"b", "c"}) {
		t.Errorf("expected oldest entry dropped, got %v", s.Names())
	}
	if !slices.Contains(obs.ops, OpEvict) {
		t.Errorf("expected evict notification, got %v", obs.ops)
	}

	s.Undo()
	s.Undo()
	if s.Undo() {
		t.Error("expected evicted entry not to be undoable")
	}
	if c.value != 1 {
		t.Errorf("expected evicted effect to persist, got %d", c.value)
	}
}

func TestCompositeCommand(t *testing.T) {
	c := &counter{}
	comp := NewCompositeCommand(
		&addCommand{c: c, delta: 1, name: "create"},
		nil,
		&addCommand{c: c, delta: 2, name: "bind"},
	)

	if comp.Len() != 2 {
		t.Fatalf("expected nil sub-command ignored, got %d", comp.Len())
	}

	s := NewStack()
	s.Execute(comp)
	s.Undo()

	want := []string{"exec:create", "exec:bind", "undo:bind", "undo:create"}
	if !slices.Equal(c.log, want) {
		t.Errorf("expected %v, got %v", want, c.log)
	}
	if u, r := s.Len(); u != 0 || r != 1 {
		t.Errorf("expected composite as a single entry, got %d/%d", u, r)
	}
	if comp.Name() != "composite(create,bind)" {
		t.Errorf("unexpected name %q", comp.Name())
	}
}

func TestFunc(t *testing.T) {
	v := 0
	f := Func{Label: "set", Do: func() { v = 1 }, Revert: func() { v = 0 }}
	s := NewStack()
	s.Execute(f)
	if v != 1 {
		t.Errorf("expected 1, got %d", v)
	}
	s.Undo()
	if v != 0 {
		t.Errorf("expected 0, got %d", v)
	}
	if NameOf(Func{}) != "func" {
		t.Errorf("expected default name func, got %s", NameOf(Func{}))
	}
}

func TestStackTop(t *testing.T) {
	s := NewStack()
	if u, r := s.Top(); u != nil || r != nil {
		t.Fatalf("expected empty top, got %v %v", u, r)
	}

	c := &counter{}
	a := &addCommand{c: c, delta: 1, name: "a"}
	b := &addCommand{c: c, delta: 2, name: "b"}
	s.Execute(a)
	s.Execute(b)
	s.Undo()

	u, r := s.Top()
	if u != a || r != b {
		t.Errorf("expected a on undo and b on redo, got %v %v", NameOf(u), NameOf(r))
	}
}

func TestStackExecuted(t *testing.T) {
	s := NewStack(WithMaxDepth(1))
	c := &counter{}
	s.Execute(&addCommand{c: c, delta: 1, name: "a"})
	s.Execute(&addCommand{c: c, delta: 1, name: "b"})
	s.Execute(nil)
	s.Undo()

	if got := s.Executed(); got != 2 {
		t.Errorf("expected 2 executed commands, got %d", got)
	}
	if undo, _ := s.Len(); undo != 0 {
		t.Errorf("expected empty history after undo, got %d", undo)
	}
}
