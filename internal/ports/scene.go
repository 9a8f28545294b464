package ports

import "planner/internal/domain"

// Scene is the edited apartment as seen by placement commands
type Scene interface {
	CurrentFloor() int
	AddObject(inst *domain.ObjectInstance)
	RemoveObject(inst *domain.ObjectInstance)
	// NearestWall returns the closest wall within the configured proximity, or nil
	NearestWall(floor int, p domain.Vec2) *domain.Wall
}

// InstancePool creates and recycles live scene-object instances
type InstancePool interface {
	Acquire(obj *domain.ObjectDefinition, pos domain.Vec3, floor int) *domain.ObjectInstance
	Release(inst *domain.ObjectInstance)
}

// SnapPlane resolves a screen coordinate onto a reference surface
type SnapPlane interface {
	Raycast(screen domain.Vec2) (domain.Vec3, bool)
}

// Preview is the floating thumbnail that follows the pointer before the object exists
type Preview interface {
	Display(obj *domain.ObjectDefinition, screen domain.Vec2)
	Move(screen domain.Vec2)
	Hide()
	Visible() bool
}

// Notifier displays a short user-facing message
type Notifier interface {
	Notify(message string)
}

// Tool names an editor tool that can be activated
type Tool string

const (
	ToolSelection            Tool = "selection"
	ToolHighlightNearestWall Tool = "highlight-nearest-wall"
)

// ToolActivator switches the active editor tool
type ToolActivator interface {
	Activate(tool Tool)
}

// DragProcessor turns one gesture into placement commands
type DragProcessor interface {
	ObjectDragBegan(g *domain.Gesture, obj *domain.ObjectDefinition)
}

// DragProcessorFactory picks a processor for an object, or nil when placement is disallowed
type DragProcessorFactory interface {
	Create(obj *domain.ObjectDefinition) DragProcessor
}
