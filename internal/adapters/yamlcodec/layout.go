package yamlcodec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"planner/internal/domain"
)

type wallDoc struct {
	ID        string  `yaml:"id"`
	Start     vec2Doc `yaml:"start,flow"`
	End       vec2Doc `yaml:"end,flow"`
	Thickness float64 `yaml:"thickness,omitempty"`
}

type floorDoc struct {
	Index int       `yaml:"index"`
	Walls []wallDoc `yaml:"walls"`
}

type apartmentDoc struct {
	Floors []floorDoc `yaml:"floors"`
}

// DecodeApartment parses an apartment layout
func DecodeApartment(data []byte) (*domain.Apartment, error) {
	var doc apartmentDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if len(doc.Floors) == 0 {
		return nil, fmt.Errorf("layout has no floors")
	}

	seenFloors := make(map[int]bool)
	floors := make([]*domain.Floor, 0, len(doc.Floors))
	for _, fd := range doc.Floors {
		if seenFloors[fd.Index] {
			return nil, fmt.Errorf("duplicate floor index %d", fd.Index)
		}
		seenFloors[fd.Index] = true

		floor := &domain.Floor{Index: fd.Index}
		seenWalls := make(map[string]bool)
		for i, wd := range fd.Walls {
			id := wd.ID
			if id == "" {
				id = fmt.Sprintf("f%d-w%d", fd.Index, i+1)
			}
			if seenWalls[id] {
				return nil, fmt.Errorf("duplicate wall %q on floor %d", id, fd.Index)
			}
			seenWalls[id] = true
			start, err := wd.Start.vec()
			if err != nil {
				return nil, fmt.Errorf("wall %q start: %w", id, err)
			}
			end, err := wd.End.vec()
			if err != nil {
				return nil, fmt.Errorf("wall %q end: %w", id, err)
			}
			floor.Walls = append(floor.Walls, &domain.Wall{
				ID:        id,
				Start:     start,
				End:       end,
				Thickness: wd.Thickness,
			})
		}
		floors = append(floors, floor)
	}
	return domain.NewApartment(floors...), nil
}

// LoadApartment reads an apartment layout file
func LoadApartment(path string) (*domain.Apartment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	return DecodeApartment(data)
}

type placedDoc struct {
	ID       string   `yaml:"id"`
	ObjectID int      `yaml:"object_id"`
	Name     string   `yaml:"name"`
	Floor    int      `yaml:"floor"`
	Position vec3Doc  `yaml:"position,flow"`
	Wall     string   `yaml:"wall,omitempty"`
	Offset   *float64 `yaml:"offset,omitempty"`
}

// EncodeFloor renders the walls and placed objects of a floor as YAML
func EncodeFloor(f *domain.Floor) ([]byte, error) {
	type floorOut struct {
		Index   int         `yaml:"index"`
		Walls   []wallDoc   `yaml:"walls"`
		Objects []placedDoc `yaml:"objects"`
	}
	out := floorOut{Index: f.Index, Walls: []wallDoc{}, Objects: []placedDoc{}}
	for _, w := range f.Walls {
		out.Walls = append(out.Walls, wallDoc{
			ID:        w.ID,
			Start:     vec2Doc{w.Start.X, w.Start.Y},
			End:       vec2Doc{w.End.X, w.End.Y},
			Thickness: w.Thickness,
		})
	}
	for _, inst := range f.Objects() {
		p := inst.Position.Get()
		pd := placedDoc{
			ID:       inst.ID.String(),
			Floor:    inst.Floor,
			Position: vec3Doc{X: p.X, Y: p.Y, Z: p.Z},
		}
		if inst.Object != nil {
			pd.ObjectID = inst.Object.ID
			pd.Name = inst.Object.Name
		}
		if inst.Binding != nil {
			offset := inst.Binding.Offset
			pd.Wall = inst.Binding.WallID
			pd.Offset = &offset
		}
		out.Objects = append(out.Objects, pd)
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode floor: %w", err)
	}
	return data, nil
}
