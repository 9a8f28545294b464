package memscene

import (
	"io"
	"log/slog"

	"planner/internal/domain"
	"planner/internal/ports"
)

// DefaultWallProximity is the plan distance within which a wall counts as nearby
const DefaultWallProximity = 0.5

// Scene implements ports.Scene over an apartment
type Scene struct {
	apartment *domain.Apartment
	proximity float64
	logger    *slog.Logger
}

var _ ports.Scene = (*Scene)(nil)

type SceneOption func(*Scene)

// WithWallProximity sets the nearest-wall search radius
func WithWallProximity(d float64) SceneOption {
	return func(s *Scene) {
		if d > 0 {
			s.proximity = d
		}
	}
}

func WithLogger(l *slog.Logger) SceneOption {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewScene(apartment *domain.Apartment, opts ...SceneOption) *Scene {
	if apartment == nil {
		apartment = domain.NewApartment()
	}
	s := &Scene{
		apartment: apartment,
		proximity: DefaultWallProximity,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scene) Apartment() *domain.Apartment { return s.apartment }

func (s *Scene) CurrentFloor() int {
	return s.apartment.FloorIndex.Get()
}

// AddObject puts inst on its floor. Instances on unknown floors are dropped with a warning.
func (s *Scene) AddObject(inst *domain.ObjectInstance) {
	f := s.apartment.Floor(inst.Floor)
	if f == nil {
		s.logger.Warn("object added to unknown floor", "floor", inst.Floor, "instance", inst.ID)
		return
	}
	f.Add(inst)
	s.logger.Debug("object added", "instance", inst.ID, "object", objectID(inst), "floor", inst.Floor)
}

func (s *Scene) RemoveObject(inst *domain.ObjectInstance) {
	f := s.apartment.Floor(inst.Floor)
	if f == nil || !f.Remove(inst) {
		s.logger.Warn("object not in scene", "instance", inst.ID, "floor", inst.Floor)
		return
	}
	s.logger.Debug("object removed", "instance", inst.ID, "object", objectID(inst), "floor", inst.Floor)
}

func (s *Scene) NearestWall(floor int, p domain.Vec2) *domain.Wall {
	f := s.apartment.Floor(floor)
	if f == nil {
		return nil
	}
	return f.NearestWall(p, s.proximity)
}

// Objects returns the instances on the current floor
func (s *Scene) Objects() []*domain.ObjectInstance {
	f := s.apartment.CurrentFloor()
	if f == nil {
		return nil
	}
	return f.Objects()
}

func objectID(inst *domain.ObjectInstance) int {
	if inst.Object == nil {
		return 0
	}
	return inst.Object.ID
}
