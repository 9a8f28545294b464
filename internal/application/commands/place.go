package commands

import (
	"fmt"

	"planner/internal/application"
	"planner/internal/domain"
	"planner/internal/ports"
)

// PlaceObjectCommand creates a scene instance of an object on a floor.
// While a drag is in progress the processor moves the live instance; RecordFinalState
// freezes the position that redo will restore.
type PlaceObjectCommand struct {
	scene    ports.Scene
	pool     ports.InstancePool
	object   *domain.ObjectDefinition
	position domain.Vec3
	floor    int
	instance *domain.ObjectInstance
	recorded bool
}

// NewPlaceObjectCommand creates a new PlaceObjectCommand
func NewPlaceObjectCommand(obj *domain.ObjectDefinition, pos domain.Vec3, floor int, pool ports.InstancePool, scene ports.Scene) *PlaceObjectCommand {
	return &PlaceObjectCommand{
		scene:    scene,
		pool:     pool,
		object:   obj,
		position: pos,
		floor:    floor,
	}
}

// Execute acquires an instance at the stored position and adds it to the floor
func (c *PlaceObjectCommand) Execute() {
	c.instance = c.pool.Acquire(c.object, c.position, c.floor)
	c.scene.AddObject(c.instance)
}

// Undo removes the instance and hands it back to the pool
func (c *PlaceObjectCommand) Undo() {
	if c.instance == nil {
		return
	}
	if !c.recorded {
		c.position = c.instance.Position.Get()
	}
	c.scene.RemoveObject(c.instance)
	c.pool.Release(c.instance)
	c.instance = nil
}

// RecordFinalState freezes the current instance position as the command's terminal state
func (c *PlaceObjectCommand) RecordFinalState() {
	if c.instance != nil {
		c.position = c.instance.Position.Get()
	}
	c.recorded = true
}

// Instance returns the live instance, or nil while undone
func (c *PlaceObjectCommand) Instance() *domain.ObjectInstance {
	return c.instance
}

// Position returns the position redo will use
func (c *PlaceObjectCommand) Position() domain.Vec3 {
	return c.position
}

func (c *PlaceObjectCommand) Object() *domain.ObjectDefinition {
	return c.object
}

func (c *PlaceObjectCommand) Recorded() bool {
	return c.recorded
}

func (c *PlaceObjectCommand) Name() string {
	return fmt.Sprintf("place %s", c.object.Name)
}

// BindToWallCommand attaches the instance created by a PlaceObjectCommand to a wall.
// The instance is resolved at execute time so redo binds the re-created instance.
type BindToWallCommand struct {
	place    *PlaceObjectCommand
	wall     *domain.Wall
	anchor   domain.Vec3
	previous domain.Vec3
	bound    *domain.ObjectInstance
}

// NewBindToWallCommand creates a new BindToWallCommand. The anchor is a world position;
// its X and Z select the point on the wall.
func NewBindToWallCommand(place *PlaceObjectCommand, anchor domain.Vec3, wall *domain.Wall) (*BindToWallCommand, error) {
	if wall == nil {
		return nil, application.ErrNoWallNearby
	}
	if place == nil {
		return nil, &application.ValidationError{
			Field:   "place",
			Message: "placement command is required",
		}
	}
	return &BindToWallCommand{place: place, wall: wall, anchor: anchor}, nil
}

func (c *BindToWallCommand) Execute() {
	inst := c.place.Instance()
	if inst == nil {
		return
	}
	offset := c.wall.OffsetOf(domain.Vec2{X: c.anchor.X, Y: c.anchor.Z})
	p := c.wall.PointAt(offset)

	c.previous = inst.Position.Get()
	inst.Binding = &domain.WallBinding{WallID: c.wall.ID, Offset: offset}
	inst.Position.Set(domain.Vec3{X: p.X, Y: 0, Z: p.Y})
	c.wall.AddHole(inst.ID)
	c.bound = inst
}

func (c *BindToWallCommand) Undo() {
	if c.bound == nil {
		return
	}
	c.wall.RemoveHole(c.bound.ID)
	c.bound.Binding = nil
	c.bound.Position.Set(c.previous)
	c.bound = nil
}

func (c *BindToWallCommand) Wall() *domain.Wall {
	return c.wall
}

func (c *BindToWallCommand) Name() string {
	return fmt.Sprintf("bind to wall %s", c.wall.ID)
}
