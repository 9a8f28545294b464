package commands

import (
	"context"
	"fmt"
	"sort"

	"planner/internal/application"
	"planner/internal/domain"
	"planner/internal/ports"
)

// CategoryListing is a category with the number of objects it holds
type CategoryListing struct {
	domain.Category
	Count     int
	Synthetic bool
}

// GroupListing is a category group ready for display
type GroupListing struct {
	ID         int
	Name       string
	Categories []CategoryListing
}

// ListCategoriesCommand lists the published category groups with object counts
type ListCategoriesCommand struct {
	objects    ports.ObjectsProvider
	categories ports.CategoriesProvider
}

// NewListCategoriesCommand creates a new ListCategoriesCommand
func NewListCategoriesCommand(objects ports.ObjectsProvider, categories ports.CategoriesProvider) *ListCategoriesCommand {
	return &ListCategoriesCommand{objects: objects, categories: categories}
}

// Execute runs the list categories command. The returned aggregation resolves the
// synthetic "All" ids of the listing.
func (c *ListCategoriesCommand) Execute(ctx context.Context) ([]GroupListing, domain.CategoryAggregation, error) {
	groups, err := c.categories.CategoryGroups()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load category groups: %w", err)
	}
	extended, agg := domain.AggregateCategories(groups)
	return BuildGroupListings(extended, agg, c.objects), agg, nil
}

// BuildGroupListings counts objects per category, hiding the unpublished group
func BuildGroupListings(groups []domain.CategoryGroup, agg domain.CategoryAggregation, objects ports.ObjectsProvider) []GroupListing {
	out := make([]GroupListing, 0, len(groups))
	for _, g := range groups {
		if g.ID == domain.UnpublishedCategoryID {
			continue
		}
		listing := GroupListing{ID: g.ID, Name: g.Name}
		for _, cat := range g.Categories {
			entry := CategoryListing{Category: cat}
			if ids, ok := agg.Resolve(cat.ID); ok {
				entry.Synthetic = true
				entry.Count = objects.GetObjectsFromCategoriesCount(ids)
			} else {
				entry.Count = objects.GetObjectsFromCategoryCount(cat.ID)
			}
			listing.Categories = append(listing.Categories, entry)
		}
		out = append(out, listing)
	}
	return out
}

// ListObjectsCommand lists the objects of a category, resolving synthetic "All" ids
type ListObjectsCommand struct {
	objects     ports.ObjectsProvider
	aggregation domain.CategoryAggregation
	CategoryID  int
}

// NewListObjectsCommand creates a new ListObjectsCommand
func NewListObjectsCommand(objects ports.ObjectsProvider, agg domain.CategoryAggregation, categoryID int) *ListObjectsCommand {
	return &ListObjectsCommand{
		objects:     objects,
		aggregation: agg,
		CategoryID:  categoryID,
	}
}

// Validate checks that the category id is real or a known synthetic id
func (c *ListObjectsCommand) Validate() error {
	if c.CategoryID <= 0 && !c.aggregation.IsSynthetic(c.CategoryID) {
		return &application.ValidationError{
			Field:   "categoryID",
			Message: fmt.Sprintf("unknown category ID: %d", c.CategoryID),
		}
	}
	return nil
}

// Execute runs the list objects command
func (c *ListObjectsCommand) Execute(ctx context.Context) ([]*domain.ObjectDefinition, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if ids, ok := c.aggregation.Resolve(c.CategoryID); ok {
		return c.objects.GetObjectsFromCategories(ids)
	}
	return c.objects.GetObjectsFromCategory(c.CategoryID)
}

// ShowObjectCommand loads one object definition
type ShowObjectCommand struct {
	objects  ports.ObjectsProvider
	ObjectID int
}

// NewShowObjectCommand creates a new ShowObjectCommand
func NewShowObjectCommand(objects ports.ObjectsProvider, objectID int) *ShowObjectCommand {
	return &ShowObjectCommand{objects: objects, ObjectID: objectID}
}

// Execute runs the show object command
func (c *ShowObjectCommand) Execute(ctx context.Context) (*domain.ObjectDefinition, error) {
	obj, err := c.objects.GetObjectByID(c.ObjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load object %d: %w", c.ObjectID, err)
	}
	return obj, nil
}

// ListAperturesCommand lists wall apertures that can be drawn on a plan
type ListAperturesCommand struct {
	objects ports.ObjectsProvider
}

// NewListAperturesCommand creates a new ListAperturesCommand
func NewListAperturesCommand(objects ports.ObjectsProvider) *ListAperturesCommand {
	return &ListAperturesCommand{objects: objects}
}

// Execute runs the list apertures command, sorted by name
func (c *ListAperturesCommand) Execute(ctx context.Context) ([]*domain.ObjectDefinition, error) {
	objs, err := c.objects.GetApertureObjects()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(objs, func(i, j int) bool { return objs[i].Name < objs[j].Name })
	return objs, nil
}
