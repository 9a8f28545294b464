package filesystem

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"planner/internal/application"
	"planner/internal/domain"
	"planner/internal/ports"
)

// BodiesDir is the directory under the objects path holding one body file per state id
const BodiesDir = "Objects"

// CacheObserver receives cache statistics
type CacheObserver interface {
	CacheHit()
	CacheMiss()
	BodyLoaded(err error)
	CatalogueRefreshed(objects int)
}

// ObjectsProvider implements ports.ObjectsProvider over a metadata table and a
// directory of persisted object bodies. Bodies are decoded lazily and cached.
// It is not safe for concurrent use.
type ObjectsProvider struct {
	paths    ports.PathsProvider
	source   ports.MetadataSource
	decoder  ports.ObjectDeserializer
	logger   *slog.Logger
	observer CacheObserver

	meta      map[int]domain.ObjectMeta
	order     []int // metadata ids, ascending
	cache     map[int]*domain.ObjectDefinition
	freeShape *domain.ObjectDefinition
	loaded    bool
}

var _ ports.ObjectsProvider = (*ObjectsProvider)(nil)

// Option configures an ObjectsProvider
type Option func(*ObjectsProvider)

func WithLogger(l *slog.Logger) Option {
	return func(p *ObjectsProvider) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithCacheObserver(o CacheObserver) Option {
	return func(p *ObjectsProvider) { p.observer = o }
}

// WithFreeShapeTemplate replaces the default free-shape template
func WithFreeShapeTemplate(tmpl *domain.ObjectDefinition) Option {
	return func(p *ObjectsProvider) {
		if tmpl != nil {
			p.freeShape = tmpl
		}
	}
}

// NewObjectsProvider creates an index. Call Refresh before any lookup.
func NewObjectsProvider(paths ports.PathsProvider, source ports.MetadataSource, decoder ports.ObjectDeserializer, opts ...Option) *ObjectsProvider {
	p := &ObjectsProvider{
		paths:     paths,
		source:    source,
		decoder:   decoder,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		freeShape: domain.NewFreeShapeTemplate(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MetaPath returns the location of the metadata table
func (p *ObjectsProvider) MetaPath() string {
	return filepath.Join(p.paths.ObjectsPath(), p.paths.MetaFilename())
}

// BodyPath returns the location of a persisted body
func (p *ObjectsProvider) BodyPath(stateID int) string {
	return filepath.Join(p.paths.ObjectsPath(), BodiesDir, strconv.Itoa(stateID))
}

// Refresh reloads the metadata table and clears every cache. On failure the
// previous catalogue stays in place.
func (p *ObjectsProvider) Refresh() error {
	path := p.MetaPath()

	rows, err := p.source.LoadMetadata(path)
	if err != nil {
		return &application.CatalogueError{Path: path, Reason: "cannot load metadata", Err: err}
	}

	meta := make(map[int]domain.ObjectMeta, len(rows)+1)
	for _, row := range rows {
		if row.ID == domain.FreeShapeObjectID {
			return &application.CatalogueError{Path: path, Reason: fmt.Sprintf("reserved object id %d", row.ID)}
		}
		if _, dup := meta[row.ID]; dup {
			return &application.CatalogueError{Path: path, Reason: fmt.Sprintf("duplicate object id %d", row.ID)}
		}
		meta[row.ID] = row
	}

	meta[domain.FreeShapeObjectID] = domain.ObjectMeta{
		ID:         domain.FreeShapeObjectID,
		StateID:    p.freeShape.StateID,
		Name:       p.freeShape.Name,
		Categories: p.freeShape.Categories,
	}

	order := make([]int, 0, len(meta))
	for id := range meta {
		order = append(order, id)
	}
	sort.Ints(order)

	p.meta = meta
	p.order = order
	p.cache = map[int]*domain.ObjectDefinition{domain.FreeShapeObjectID: p.freeShape}
	p.loaded = true

	p.logger.Info("catalogue refreshed", "path", path, "objects", len(rows))
	if p.observer != nil {
		p.observer.CatalogueRefreshed(len(rows))
	}
	return nil
}

// GetObjectByID returns the cached definition, loading its body on a miss.
// The free-shape id yields a fresh clone on every call.
func (p *ObjectsProvider) GetObjectByID(id int) (*domain.ObjectDefinition, error) {
	if !p.loaded {
		return nil, application.ErrCatalogueUnavailable
	}
	if id == domain.FreeShapeObjectID {
		return p.freeShape.Clone(), nil
	}

	if obj, ok := p.cache[id]; ok {
		p.hit()
		return obj, nil
	}
	p.miss()

	m, ok := p.meta[id]
	if !ok {
		return nil, fmt.Errorf("object %d: %w", id, application.ErrNotFound)
	}

	obj, err := p.load(m)
	if err != nil {
		return nil, err
	}
	p.cache[id] = obj
	return obj, nil
}

// load reads and decodes one body without touching the cache
func (p *ObjectsProvider) load(m domain.ObjectMeta) (*domain.ObjectDefinition, error) {
	data, err := os.ReadFile(p.BodyPath(m.StateID))
	if err == nil {
		var obj *domain.ObjectDefinition
		obj, err = p.decoder.Deserialize(data)
		if err == nil && obj == nil {
			err = errors.New("empty body")
		}
		if err == nil {
			obj.ID = m.ID
			obj.StateID = m.StateID
			if obj.Name == "" {
				obj.Name = m.Name
			}
			if len(obj.Categories) == 0 {
				obj.Categories = append([]int(nil), m.Categories...)
			}
			p.logger.Debug("object body loaded", "id", m.ID, "state", m.StateID)
			p.bodyLoaded(nil)
			return obj, nil
		}
	}

	p.logger.Warn("object body failed to load", "id", m.ID, "state", m.StateID, "error", err)
	p.bodyLoaded(err)
	return nil, &application.DeserializeError{ObjectID: m.ID, StateID: m.StateID, Err: err}
}

// GetObjectNameByID returns the metadata name. Negative ids denote the free shape.
func (p *ObjectsProvider) GetObjectNameByID(id int) (string, error) {
	if id < 0 {
		id = domain.FreeShapeObjectID
	}
	m, ok := p.meta[id]
	if !ok {
		return "", fmt.Errorf("object %d: %w", id, application.ErrNotFound)
	}
	return m.Name, nil
}

func (p *ObjectsProvider) ObjectExists(id int) bool {
	_, ok := p.meta[id]
	return ok
}

// Len returns the number of catalogue entries, free shape included
func (p *ObjectsProvider) Len() int {
	return len(p.order)
}

func (p *ObjectsProvider) GetObjectsFromCategory(categoryID int) ([]*domain.ObjectDefinition, error) {
	return p.GetObjectsFromCategories([]int{categoryID})
}

func (p *ObjectsProvider) GetObjectsFromCategories(categoryIDs []int) ([]*domain.ObjectDefinition, error) {
	return p.collect(func(m domain.ObjectMeta) bool {
		return m.InAnyCategory(categoryIDs)
	})
}

func (p *ObjectsProvider) GetObjectsFromCategoryCount(categoryID int) int {
	return p.GetObjectsFromCategoriesCount([]int{categoryID})
}

func (p *ObjectsProvider) GetObjectsFromCategoriesCount(categoryIDs []int) int {
	n := 0
	for _, id := range p.order {
		if p.meta[id].InAnyCategory(categoryIDs) {
			n++
		}
	}
	return n
}

// GetObjectsByName matches a case-insensitive substring of the name. Objects in
// any excluded category are never returned.
func (p *ObjectsProvider) GetObjectsByName(filter string, excludedCategories ...int) ([]*domain.ObjectDefinition, error) {
	filter = strings.ToLower(filter)
	return p.collect(func(m domain.ObjectMeta) bool {
		if m.Name == "" || m.InAnyCategory(excludedCategories) {
			return false
		}
		return strings.Contains(strings.ToLower(m.Name), filter)
	})
}

// GetApertureObjects returns published hole-providers that carry a plan thumbnail.
// Bodies loaded only for this query are not cached.
func (p *ObjectsProvider) GetApertureObjects() ([]*domain.ObjectDefinition, error) {
	if !p.loaded {
		return nil, application.ErrCatalogueUnavailable
	}

	var out []*domain.ObjectDefinition
	for _, id := range p.order {
		m := p.meta[id]
		if id == domain.FreeShapeObjectID || m.InOnlyCategory(domain.UnpublishedCategoryID) {
			continue
		}

		obj, ok := p.cache[id]
		if !ok {
			var err error
			if obj, err = p.load(m); err != nil {
				return nil, err
			}
		}
		if obj.IsHoleProvider() && obj.HasPlanThumbnail() {
			out = append(out, obj)
		}
	}
	return out, nil
}

func (p *ObjectsProvider) collect(match func(domain.ObjectMeta) bool) ([]*domain.ObjectDefinition, error) {
	if !p.loaded {
		return nil, application.ErrCatalogueUnavailable
	}

	var out []*domain.ObjectDefinition
	for _, id := range p.order {
		if !match(p.meta[id]) {
			continue
		}
		obj, err := p.GetObjectByID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

func (p *ObjectsProvider) hit() {
	if p.observer != nil {
		p.observer.CacheHit()
	}
}

func (p *ObjectsProvider) miss() {
	if p.observer != nil {
		p.observer.CacheMiss()
	}
}

func (p *ObjectsProvider) bodyLoaded(err error) {
	if p.observer != nil {
		p.observer.BodyLoaded(err)
	}
}
