package domain

import (
	"slices"
	"strings"

	"github.com/jinzhu/copier"
)

// Reserved identifiers
const (
	FreeShapeObjectID     = -1 // catalogue id of the free-shape template
	UnpublishedCategoryID = 1  // objects only in this category are hidden from users
	ShapesCategoryID      = 2  // default category of the free-shape template
)

// ObjectFlags describes the semantic kind of an object definition
type ObjectFlags uint32

const (
	FlagHoleProvider ObjectFlags = 1 << iota // door, window: must be bound to a wall
	FlagFreeShape                            // template cloned on every placement
)

// Has reports whether all bits of f are set
func (o ObjectFlags) Has(f ObjectFlags) bool {
	return o&f == f
}

// String returns a readable list of flag names
func (o ObjectFlags) String() string {
	var names []string
	if o.Has(FlagHoleProvider) {
		names = append(names, "hole_provider")
	}
	if o.Has(FlagFreeShape) {
		names = append(names, "free_shape")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseObjectFlag maps a flag name to its bit, returning false for unknown names
func ParseObjectFlag(name string) (ObjectFlags, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hole_provider", "hole-provider", "holeprovider":
		return FlagHoleProvider, true
	case "free_shape", "free-shape", "freeshape":
		return FlagFreeShape, true
	}
	return 0, false
}

// Geometry is the opaque geometric payload of an object
type Geometry struct {
	Size    Vec3   // bounding box, world units
	Outline []Vec2 // plan outline, used by free shapes
}

// ObjectMeta is one row of the catalogue metadata table
type ObjectMeta struct {
	ID         int
	StateID    int // identifies the persisted body of the object
	Name       string
	Categories []int
}

// InAnyCategory reports whether the metadata belongs to at least one of ids
func (m ObjectMeta) InAnyCategory(ids []int) bool {
	for _, c := range m.Categories {
		if slices.Contains(ids, c) {
			return true
		}
	}
	return false
}

// InOnlyCategory reports whether id is the single category of the metadata
func (m ObjectMeta) InOnlyCategory(id int) bool {
	return len(m.Categories) == 1 && m.Categories[0] == id
}

// ObjectDefinition is a placeable catalogue entry.
// Flags must not be changed once the definition has been loaded.
type ObjectDefinition struct {
	ID         int
	StateID    int
	Name       string
	Categories []int
	Flags      ObjectFlags
	Thumbnail  []byte // catalogue thumbnail, PNG
	PlanSVG    string // plan-view thumbnail
	Geometry   Geometry
}

// IsHoleProvider reports whether the object must be bound to a wall
func (o *ObjectDefinition) IsHoleProvider() bool {
	return o.Flags.Has(FlagHoleProvider)
}

// IsFreeShape reports whether the object is a free-shape template or one of its copies
func (o *ObjectDefinition) IsFreeShape() bool {
	return o.Flags.Has(FlagFreeShape)
}

// HasPlanThumbnail reports whether the object can be drawn on a plan
func (o *ObjectDefinition) HasPlanThumbnail() bool {
	return strings.TrimSpace(o.PlanSVG) != ""
}

// Clone returns a deep copy. Two placed free shapes never share the same definition.
func (o *ObjectDefinition) Clone() *ObjectDefinition {
	out := &ObjectDefinition{}
	if err := copier.CopyWithOption(out, o, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which cannot happen for identical types
		panic(err)
	}
	return out
}

// NewFreeShapeTemplate returns the process-wide free-shape template
func NewFreeShapeTemplate(categories ...int) *ObjectDefinition {
	if len(categories) == 0 {
		categories = []int{ShapesCategoryID}
	}
	return &ObjectDefinition{
		ID:         FreeShapeObjectID,
		StateID:    -1,
		Name:       "Free shape",
		Categories: slices.Clone(categories),
		Flags:      FlagFreeShape,
		Geometry: Geometry{
			Size: Vec3{X: 1, Y: 1, Z: 1},
			Outline: []Vec2{
				{X: 0, Y: 0},
				{X: 1, Y: 0},
				{X: 1, Y: 1},
				{X: 0, Y: 1},
			},
		},
	}
}

// EditMode is the active editor view
type EditMode int

const (
	Mode2D EditMode = iota
	Mode3D
)

func (m EditMode) String() string {
	if m == Mode3D {
		return "3d"
	}
	return "2d"
}

// ParseEditMode parses "2d" or "3d"
func ParseEditMode(s string) (EditMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2d", "":
		return Mode2D, true
	case "3d":
		return Mode3D, true
	}
	return Mode2D, false
}

// Layer is the visual layer an instance renders on
type Layer int

const (
	LayerObject Layer = iota
	LayerDragged
)
