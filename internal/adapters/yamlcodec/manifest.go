package yamlcodec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"planner/internal/domain"
)

type categoryDoc struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

type groupDoc struct {
	ID         int           `yaml:"id"`
	Name       string        `yaml:"name"`
	Categories []categoryDoc `yaml:"categories"`
}

type manifestDoc struct {
	Groups  []groupDoc  `yaml:"groups"`
	Objects []objectDoc `yaml:"objects"`
}

// DecodeManifest parses an import manifest
func DecodeManifest(data []byte) (*domain.CatalogueManifest, error) {
	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	m := &domain.CatalogueManifest{}
	for _, gd := range doc.Groups {
		g := domain.CategoryGroup{ID: gd.ID, Name: gd.Name}
		for _, cd := range gd.Categories {
			g.Categories = append(g.Categories, domain.Category{ID: cd.ID, Name: cd.Name})
		}
		m.Groups = append(m.Groups, g)
	}
	for i := range doc.Objects {
		obj, err := doc.Objects[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", doc.Objects[i].ID, err)
		}
		m.Objects = append(m.Objects, obj)
	}
	return m, nil
}

// LoadManifest reads an import manifest file
func LoadManifest(path string) (*domain.CatalogueManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return DecodeManifest(data)
}
