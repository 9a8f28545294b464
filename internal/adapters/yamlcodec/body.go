// Package yamlcodec reads and writes object bodies, apartment layouts and
// import manifests as YAML.
package yamlcodec

import (
	"encoding/base64"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"planner/internal/domain"
	"planner/internal/ports"
)

// vec2Doc is a flow pair [x, y]
type vec2Doc []float64

func (v vec2Doc) vec() (domain.Vec2, error) {
	if len(v) != 2 {
		return domain.Vec2{}, fmt.Errorf("expected [x, y], got %v", []float64(v))
	}
	return domain.Vec2{X: v[0], Y: v[1]}, nil
}

type vec3Doc struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// objectDoc is the on-disk shape of an object body
type objectDoc struct {
	ID         int       `yaml:"id,omitempty"`
	StateID    int       `yaml:"state_id,omitempty"`
	Name       string    `yaml:"name"`
	Categories []int     `yaml:"categories,flow,omitempty"`
	Flags      []string  `yaml:"flags,flow,omitempty"`
	Thumbnail  string    `yaml:"thumbnail,omitempty"` // base64 PNG
	PlanSVG    string    `yaml:"plan_svg,omitempty"`
	Size       vec3Doc   `yaml:"size"`
	Outline    []vec2Doc `yaml:"outline,flow,omitempty"`
}

func (d *objectDoc) toDomain() (*domain.ObjectDefinition, error) {
	obj := &domain.ObjectDefinition{
		ID:         d.ID,
		StateID:    d.StateID,
		Name:       d.Name,
		Categories: d.Categories,
		PlanSVG:    d.PlanSVG,
		Geometry: domain.Geometry{
			Size: domain.Vec3{X: d.Size.X, Y: d.Size.Y, Z: d.Size.Z},
		},
	}

	for _, name := range d.Flags {
		f, ok := domain.ParseObjectFlag(name)
		if !ok {
			return nil, fmt.Errorf("unknown flag %q", name)
		}
		obj.Flags |= f
	}

	if d.Thumbnail != "" {
		thumb, err := base64.StdEncoding.DecodeString(d.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("invalid thumbnail: %w", err)
		}
		obj.Thumbnail = thumb
	}

	for _, p := range d.Outline {
		v, err := p.vec()
		if err != nil {
			return nil, fmt.Errorf("invalid outline: %w", err)
		}
		obj.Geometry.Outline = append(obj.Geometry.Outline, v)
	}
	return obj, nil
}

func fromDomain(obj *domain.ObjectDefinition) objectDoc {
	d := objectDoc{
		ID:         obj.ID,
		StateID:    obj.StateID,
		Name:       obj.Name,
		Categories: slices.Sorted(slices.Values(obj.Categories)),
		PlanSVG:    obj.PlanSVG,
		Size:       vec3Doc{X: obj.Geometry.Size.X, Y: obj.Geometry.Size.Y, Z: obj.Geometry.Size.Z},
	}
	if obj.IsHoleProvider() {
		d.Flags = append(d.Flags, "hole_provider")
	}
	if obj.IsFreeShape() {
		d.Flags = append(d.Flags, "free_shape")
	}
	if len(obj.Thumbnail) > 0 {
		d.Thumbnail = base64.StdEncoding.EncodeToString(obj.Thumbnail)
	}
	for _, p := range obj.Geometry.Outline {
		d.Outline = append(d.Outline, vec2Doc{p.X, p.Y})
	}
	return d
}

// Codec implements the object body (de)serializer
type Codec struct{}

var (
	_ ports.ObjectDeserializer = Codec{}
	_ ports.ObjectSerializer   = Codec{}
)

func NewCodec() Codec {
	return Codec{}
}

// Deserialize decodes one body. Empty input is an error.
func (Codec) Deserialize(data []byte) (*domain.ObjectDefinition, error) {
	var doc objectDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse body: %w", err)
	}
	if doc.Name == "" && len(doc.Flags) == 0 && doc.Size == (vec3Doc{}) {
		return nil, fmt.Errorf("empty body")
	}
	return doc.toDomain()
}

// Serialize encodes one body
func (Codec) Serialize(obj *domain.ObjectDefinition) ([]byte, error) {
	out, err := yaml.Marshal(fromDomain(obj))
	if err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}
	return out, nil
}
