package commands

import (
	"context"
	"fmt"
	"time"

	"planner/internal/application"
	"planner/internal/domain"
	"planner/internal/ports"
)

// ImportCatalogueCommand writes a manifest of categories and objects into the
// catalogue store and the objects directory in one transaction
type ImportCatalogueCommand struct {
	store    ports.CatalogueStore
	bodies   ports.BodyWriter
	Manifest *domain.CatalogueManifest
}

// NewImportCatalogueCommand creates a new ImportCatalogueCommand
func NewImportCatalogueCommand(store ports.CatalogueStore, bodies ports.BodyWriter, manifest *domain.CatalogueManifest) *ImportCatalogueCommand {
	return &ImportCatalogueCommand{
		store:    store,
		bodies:   bodies,
		Manifest: manifest,
	}
}

// Validate checks ids, names and category references of the manifest
func (c *ImportCatalogueCommand) Validate() error {
	if c.Manifest == nil {
		return &application.ValidationError{Field: "manifest", Message: "manifest is required"}
	}

	known := make(map[int]bool)
	for _, g := range c.Manifest.Groups {
		if g.ID <= 0 {
			return &application.ValidationError{
				Field:   "groupID",
				Message: fmt.Sprintf("group %q must have a positive ID", g.Name),
			}
		}
		for _, cat := range g.Categories {
			if cat.ID <= 0 {
				return &application.ValidationError{
					Field:   "categoryID",
					Message: fmt.Sprintf("category %q must have a positive ID", cat.Name),
				}
			}
			known[cat.ID] = true
		}
	}

	seen := make(map[int]bool)
	for _, obj := range c.Manifest.Objects {
		if obj.ID <= 0 {
			return &application.ValidationError{
				Field:   "objectID",
				Message: fmt.Sprintf("object %q must have a positive ID", obj.Name),
			}
		}
		if seen[obj.ID] {
			return &application.ValidationError{
				Field:   "objectID",
				Message: fmt.Sprintf("duplicate object ID: %d", obj.ID),
			}
		}
		seen[obj.ID] = true

		if err := application.ValidateRequired("name", obj.Name); err != nil {
			return err
		}
		if len(obj.Categories) == 0 {
			return &application.ValidationError{
				Field:   "categoryID",
				Message: fmt.Sprintf("object %d has no category", obj.ID),
			}
		}
		for _, id := range obj.Categories {
			if len(known) > 0 && !known[id] && id != domain.UnpublishedCategoryID {
				return &application.ValidationError{
					Field:   "categoryID",
					Message: fmt.Sprintf("object %d references unknown category ID: %d", obj.ID, id),
				}
			}
		}
	}
	return nil
}

// Execute runs the import. Bodies are written before the metadata commit so a
// committed row never points at a missing body.
func (c *ImportCatalogueCommand) Execute(ctx context.Context) (*domain.ImportStats, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	stats := &domain.ImportStats{}

	tx, err := c.store.BeginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for gi := range c.Manifest.Groups {
		g := &c.Manifest.Groups[gi]
		if err = tx.UpsertGroup(g, gi); err != nil {
			return nil, fmt.Errorf("failed to upsert group %d: %w", g.ID, err)
		}
		stats.GroupsUpserted++
		for ci := range g.Categories {
			if err = tx.UpsertCategory(g.ID, &g.Categories[ci], ci); err != nil {
				return nil, fmt.Errorf("failed to upsert category %d: %w", g.Categories[ci].ID, err)
			}
			stats.CategoriesUpserted++
		}
	}

	for _, obj := range c.Manifest.Objects {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if obj.StateID <= 0 {
			obj.StateID = obj.ID
		}
		if err = c.bodies.WriteBody(obj); err != nil {
			return nil, fmt.Errorf("failed to write body of object %d: %w", obj.ID, err)
		}
		stats.BodiesWritten++

		meta := &domain.ObjectMeta{
			ID:         obj.ID,
			StateID:    obj.StateID,
			Name:       obj.Name,
			Categories: obj.Categories,
		}
		if err = tx.UpsertObject(meta); err != nil {
			return nil, fmt.Errorf("failed to upsert object %d: %w", obj.ID, err)
		}
		stats.ObjectsUpserted++
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}
