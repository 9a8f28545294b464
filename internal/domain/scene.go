package domain

import (
	"math"
	"slices"

	"github.com/google/uuid"
)

// Wall is a straight wall segment in plan coordinates
type Wall struct {
	ID        string
	Start     Vec2
	End       Vec2
	Thickness float64
	holes     []uuid.UUID
}

func (w *Wall) Length() float64 { return w.Start.Dist(w.End) }

// DistanceTo returns the plan distance from p to the wall axis
func (w *Wall) DistanceTo(p Vec2) float64 {
	return DistanceToSegment(p, w.Start, w.End)
}

// OffsetOf returns the distance along the wall from Start to the projection of p
func (w *Wall) OffsetOf(p Vec2) float64 {
	return ProjectOnSegment(p, w.Start, w.End) * w.Length()
}

// PointAt returns the plan point at the given offset from Start
func (w *Wall) PointAt(offset float64) Vec2 {
	l := w.Length()
	if l < Epsilon {
		return w.Start
	}
	return w.Start.Lerp(w.End, math.Max(0, math.Min(1, offset/l)))
}

func (w *Wall) AddHole(id uuid.UUID) {
	if !slices.Contains(w.holes, id) {
		w.holes = append(w.holes, id)
	}
}

func (w *Wall) RemoveHole(id uuid.UUID) {
	w.holes = slices.DeleteFunc(w.holes, func(h uuid.UUID) bool { return h == id })
}

// Holes returns the ids of instances bound into this wall
func (w *Wall) Holes() []uuid.UUID { return slices.Clone(w.holes) }

// WallBinding attaches an instance to a wall at an offset along it
type WallBinding struct {
	WallID string
	Offset float64
}

// ObjectInstance is a live placed object. Instances are pooled; Reinitialize
// overwrites every mutable field before reuse.
type ObjectInstance struct {
	ID       uuid.UUID
	Object   *ObjectDefinition
	Position *Property[Vec3]
	Layer    *Property[Layer]
	Floor    int
	Binding  *WallBinding
}

func NewObjectInstance() *ObjectInstance {
	return &ObjectInstance{
		Position: NewProperty(Vec3{}),
		Layer:    NewProperty(LayerObject),
	}
}

// Reinitialize resets the instance for a new placement with a fresh id
func (i *ObjectInstance) Reinitialize(obj *ObjectDefinition, pos Vec3, floor int) {
	i.ID = uuid.New()
	i.Object = obj
	i.Position.Reinitialize(pos)
	i.Layer.Reinitialize(LayerObject)
	i.Floor = floor
	i.Binding = nil
}

// Floor holds the walls and placed objects of one storey
type Floor struct {
	Index   int
	Walls   []*Wall
	objects []*ObjectInstance
}

func (f *Floor) Add(inst *ObjectInstance) {
	if !slices.Contains(f.objects, inst) {
		f.objects = append(f.objects, inst)
	}
}

// Remove reports whether the instance was on the floor
func (f *Floor) Remove(inst *ObjectInstance) bool {
	i := slices.Index(f.objects, inst)
	if i < 0 {
		return false
	}
	f.objects = slices.Delete(f.objects, i, i+1)
	return true
}

func (f *Floor) Objects() []*ObjectInstance { return slices.Clone(f.objects) }

func (f *Floor) Wall(id string) *Wall {
	for _, w := range f.Walls {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// NearestWall returns the closest wall whose axis lies within maxDistance of p, or nil
func (f *Floor) NearestWall(p Vec2, maxDistance float64) *Wall {
	var best *Wall
	bestDist := math.Inf(1)
	for _, w := range f.Walls {
		d := w.DistanceTo(p)
		if d <= maxDistance && d < bestDist {
			best, bestDist = w, d
		}
	}
	return best
}

// Apartment is the edited scene
type Apartment struct {
	Floors     []*Floor
	FloorIndex *Property[int]
}

func NewApartment(floors ...*Floor) *Apartment {
	if len(floors) == 0 {
		floors = []*Floor{{Index: 0}}
	}
	return &Apartment{Floors: floors, FloorIndex: NewProperty(floors[0].Index)}
}

// Floor returns the floor with the given index, or nil
func (a *Apartment) Floor(index int) *Floor {
	for _, f := range a.Floors {
		if f.Index == index {
			return f
		}
	}
	return nil
}

// CurrentFloor returns the floor selected by FloorIndex
func (a *Apartment) CurrentFloor() *Floor {
	return a.Floor(a.FloorIndex.Get())
}
