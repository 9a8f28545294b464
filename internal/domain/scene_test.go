package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNearestWall(t *testing.T) {
	floor := &Floor{
		Walls: []*Wall{
			{ID: "south", Start: Vec2{X: 0, Y: 0}, End: Vec2{X: 10, Y: 0}},
			{ID: "west", Start: Vec2{X: 0, Y: 0}, End: Vec2{X: 0, Y: 10}},
		},
	}

	tests := []struct {
		name string
		p    Vec2
		max  float64
		want string
	}{
		{"close to south", Vec2{X: 5, Y: 0.2}, 0.5, "south"},
		{"close to west", Vec2{X: 0.3, Y: 6}, 0.5, "west"},
		{"corner picks closest", Vec2{X: 0.1, Y: 0.4}, 0.5, "west"},
		{"too far", Vec2{X: 5, Y: 5}, 0.5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := floor.NearestWall(tt.p, tt.max)
			switch {
			case tt.want == "" && got != nil:
				t.Errorf("expected no wall, got %s", got.ID)
			case tt.want != "" && (got == nil || got.ID != tt.want):
				t.Errorf("expected %s, got %v", tt.want, got)
			}
		})
	}
}

func TestWallOffsets(t *testing.T) {
	w := &Wall{Start: Vec2{X: 0, Y: 0}, End: Vec2{X: 4, Y: 0}}

	if got := w.OffsetOf(Vec2{X: 3, Y: 2}); !almostEqual(got, 3) {
		t.Errorf("expected offset 3, got %v", got)
	}
	if got := w.PointAt(1); got != (Vec2{X: 1}) {
		t.Errorf("expected (1,0), got %v", got)
	}
	if got := w.PointAt(10); got != (Vec2{X: 4}) {
		t.Errorf("expected clamp to end, got %v", got)
	}

	id := uuid.New()
	w.AddHole(id)
	w.AddHole(id)
	if len(w.Holes()) != 1 {
		t.Errorf("expected 1 hole, got %d", len(w.Holes()))
	}
	w.RemoveHole(id)
	if len(w.Holes()) != 0 {
		t.Errorf("expected no holes, got %d", len(w.Holes()))
	}
}

func TestFloorObjects(t *testing.T) {
	f := &Floor{}
	inst := NewObjectInstance()

	f.Add(inst)
	f.Add(inst)
	if len(f.Objects()) != 1 {
		t.Fatalf("expected 1 object, got %d", len(f.Objects()))
	}
	if !f.Remove(inst) {
		t.Error("expected remove to report true")
	}
	if f.Remove(inst) {
		t.Error("expected second remove to report false")
	}
}

func TestObjectInstanceReinitialize(t *testing.T) {
	inst := NewObjectInstance()
	obj := &ObjectDefinition{ID: 7}
	inst.Reinitialize(obj, Vec3{X: 1}, 0)
	first := inst.ID
	inst.Layer.Set(LayerDragged)
	inst.Binding = &WallBinding{WallID: "w"}
	inst.Position.Subscribe(func(Vec3) { t.Error("stale subscriber called") })

	inst.Reinitialize(obj, Vec3{X: 2}, 1)
	inst.Position.Set(Vec3{X: 3})

	if inst.ID == first {
		t.Error("expected fresh id")
	}
	if inst.Layer.Get() != LayerObject || inst.Binding != nil || inst.Floor != 1 {
		t.Errorf("expected reset fields, got layer=%v binding=%v floor=%d", inst.Layer.Get(), inst.Binding, inst.Floor)
	}
}

func TestApartmentCurrentFloor(t *testing.T) {
	a := NewApartment(&Floor{Index: 0}, &Floor{Index: 1})
	if a.CurrentFloor().Index != 0 {
		t.Errorf("expected floor 0, got %d", a.CurrentFloor().Index)
	}
	a.FloorIndex.Set(1)
	if a.CurrentFloor().Index != 1 {
		t.Errorf("expected floor 1, got %d", a.CurrentFloor().Index)
	}
	a.FloorIndex.Set(5)
	if a.CurrentFloor() != nil {
		t.Error("expected nil for unknown floor")
	}
}
