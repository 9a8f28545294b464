// Package catalogue drives the object catalogue panel: a category screen, an
// object screen, free-text search and drag initiation.
package catalogue

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"planner/internal/application/commands"
	"planner/internal/domain"
	"planner/internal/ports"
)

// BackTitle labels the object list shown for a search
const BackTitle = "Back"

// Screen identifies which panel is visible
type Screen int

const (
	ScreenCategories Screen = iota
	ScreenObjects
)

func (s Screen) String() string {
	if s == ScreenObjects {
		return "objects"
	}
	return "categories"
}

// CategoryEntry is one clickable category with its object count
type CategoryEntry struct {
	ID        int
	Name      string
	Count     int
	Synthetic bool
}

// GroupEntry is a titled run of categories
type GroupEntry struct {
	ID         int
	Name       string
	Categories []CategoryEntry
}

// CategoriesModel backs the category screen
type CategoriesModel struct {
	Groups []GroupEntry
}

// Find returns the entry with the given id
func (m CategoriesModel) Find(id int) (CategoryEntry, bool) {
	for _, g := range m.Groups {
		for _, c := range g.Categories {
			if c.ID == id {
				return c, true
			}
		}
	}
	return CategoryEntry{}, false
}

// ObjectEntry is one draggable object
type ObjectEntry struct {
	ID    int
	Name  string
	Flags domain.ObjectFlags
}

// DragStart is raised by an object entry when the user starts dragging it
type DragStart struct {
	ObjectID int
	Gesture  *domain.Gesture
}

// ObjectsModel backs the object screen. DragBegan is fresh for every model.
type ObjectsModel struct {
	Title     string
	Objects   []ObjectEntry
	DragBegan *domain.Signal[DragStart]
}

// BeginDrag reports a drag start on the object with the given id
func (m ObjectsModel) BeginDrag(id int, g *domain.Gesture) {
	if m.DragBegan == nil {
		return
	}
	m.DragBegan.Emit(DragStart{ObjectID: id, Gesture: g})
}

// Controller owns the catalogue panel state. All methods run on the UI thread.
type Controller struct {
	objects    ports.ObjectsProvider
	categories ports.CategoriesProvider
	factory    ports.DragProcessorFactory
	logger     *slog.Logger

	Screen     *domain.Property[Screen]
	Categories *domain.Property[CategoriesModel]
	Objects    *domain.Property[ObjectsModel]
	Search     *domain.Property[string]

	aggregation domain.CategoryAggregation
	subs        domain.Subscriptions
	objectSubs  domain.Subscriptions
	lastErr     error
}

// Option configures a Controller
type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewController(objects ports.ObjectsProvider, categories ports.CategoriesProvider, factory ports.DragProcessorFactory, opts ...Option) *Controller {
	c := &Controller{
		objects:    objects,
		categories: categories,
		factory:    factory,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Screen:     domain.NewProperty(ScreenCategories),
		Categories: domain.NewProperty(CategoriesModel{}),
		Objects:    domain.NewProperty(ObjectsModel{}),
		Search:     domain.NewProperty(""),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize builds the category screen and starts listening to search input
func (c *Controller) Initialize() error {
	groups, err := c.categories.CategoryGroups()
	if err != nil {
		return err
	}
	extended, agg := domain.AggregateCategories(groups)
	c.aggregation = agg
	c.Categories.Set(toCategoriesModel(commands.BuildGroupListings(extended, agg, c.objects)))

	c.subs.Clear()
	c.subs.Add(c.Search.Subscribe(c.searchChanged))
	c.Screen.Set(ScreenCategories)
	return nil
}

// Dispose releases every subscription held by the controller
func (c *Controller) Dispose() {
	c.objectSubs.Clear()
	c.subs.Clear()
}

// Aggregation returns the synthetic category map built by Initialize
func (c *Controller) Aggregation() domain.CategoryAggregation { return c.aggregation }

// LastError returns the most recent error raised while handling a drag or search
func (c *Controller) LastError() error { return c.lastErr }

// CategoryClicked shows the objects of the category
func (c *Controller) CategoryClicked(entry CategoryEntry) error {
	objs, err := commands.NewListObjectsCommand(c.objects, c.aggregation, entry.ID).Execute(context.Background())
	if err != nil {
		return err
	}
	c.showObjectsView(entry.Name, objs)
	return nil
}

// BackClicked returns to the category screen and clears the search
func (c *Controller) BackClicked() {
	c.objectSubs.Clear()
	c.Screen.Set(ScreenCategories)
	if c.Search.Get() != "" {
		c.Search.Set("")
	}
}

func (c *Controller) searchChanged(text string) {
	if text == "" {
		if c.Screen.Get() != ScreenCategories {
			c.BackClicked()
		}
		return
	}

	objs, err := c.objects.GetObjectsByName(text, domain.UnpublishedCategoryID)
	if err != nil {
		c.fail("search failed", err, "search", text)
		return
	}
	c.showObjectsView(BackTitle, objs)
}

func (c *Controller) showObjectsView(title string, objs []*domain.ObjectDefinition) {
	c.objectSubs.Clear()

	model := ObjectsModel{
		Title:     title,
		Objects:   make([]ObjectEntry, 0, len(objs)),
		DragBegan: domain.NewSignal[DragStart](),
	}
	for _, o := range objs {
		model.Objects = append(model.Objects, ObjectEntry{ID: o.ID, Name: o.Name, Flags: o.Flags})
	}
	c.objectSubs.Add(model.DragBegan.Subscribe(c.dragBegan))

	c.Objects.Set(model)
	c.Screen.Set(ScreenObjects)
}

func (c *Controller) dragBegan(ds DragStart) {
	obj, err := c.objects.GetObjectByID(ds.ObjectID)
	if err != nil {
		c.fail("failed to resolve dragged object", err, "object", ds.ObjectID)
		return
	}

	processor := c.factory.Create(obj)
	if processor == nil {
		c.logger.Debug("drag ignored", "object", obj.ID)
		return
	}
	c.lastErr = nil
	processor.ObjectDragBegan(ds.Gesture, obj)
}

func (c *Controller) fail(msg string, err error, args ...any) {
	c.lastErr = fmt.Errorf("%s: %w", msg, err)
	c.logger.Error(msg, append(args, "error", err)...)
}

func toCategoriesModel(listings []commands.GroupListing) CategoriesModel {
	model := CategoriesModel{Groups: make([]GroupEntry, 0, len(listings))}
	for _, g := range listings {
		entry := GroupEntry{ID: g.ID, Name: g.Name}
		for _, cat := range g.Categories {
			entry.Categories = append(entry.Categories, CategoryEntry{
				ID:        cat.ID,
				Name:      cat.Name,
				Count:     cat.Count,
				Synthetic: cat.Synthetic,
			})
		}
		model.Groups = append(model.Groups, entry)
	}
	return model
}
