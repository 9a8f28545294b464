package commands

import (
	"errors"
	"slices"
	"sort"
	"strings"

	"planner/internal/application"
	"planner/internal/domain"
	"planner/internal/ports"
)

// fakeScene is a single-floor scene
type fakeScene struct {
	floor *domain.Floor
}

func newFakeScene(walls ...*domain.Wall) *fakeScene {
	return &fakeScene{floor: &domain.Floor{Walls: walls}}
}

func (s *fakeScene) CurrentFloor() int                        { return 0 }
func (s *fakeScene) AddObject(inst *domain.ObjectInstance)    { s.floor.Add(inst) }
func (s *fakeScene) RemoveObject(inst *domain.ObjectInstance) { s.floor.Remove(inst) }
func (s *fakeScene) NearestWall(_ int, p domain.Vec2) *domain.Wall {
	return s.floor.NearestWall(p, 0.5)
}

// fakePool counts acquire and release calls
type fakePool struct {
	acquired int
	released int
}

func (p *fakePool) Acquire(obj *domain.ObjectDefinition, pos domain.Vec3, floor int) *domain.ObjectInstance {
	p.acquired++
	inst := domain.NewObjectInstance()
	inst.Reinitialize(obj, pos, floor)
	return inst
}

func (p *fakePool) Release(inst *domain.ObjectInstance) { p.released++ }

// fakeObjects is an in-memory ObjectsProvider
type fakeObjects struct {
	objects map[int]*domain.ObjectDefinition
}

func newFakeObjects(objs ...*domain.ObjectDefinition) *fakeObjects {
	f := &fakeObjects{objects: make(map[int]*domain.ObjectDefinition)}
	for _, o := range objs {
		f.objects[o.ID] = o
	}
	return f
}

func (f *fakeObjects) sorted(keep func(*domain.ObjectDefinition) bool) []*domain.ObjectDefinition {
	var out []*domain.ObjectDefinition
	for _, o := range f.objects {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func inAny(o *domain.ObjectDefinition, ids []int) bool {
	for _, c := range o.Categories {
		if slices.Contains(ids, c) {
			return true
		}
	}
	return false
}

func (f *fakeObjects) Refresh() error { return nil }

func (f *fakeObjects) GetObjectByID(id int) (*domain.ObjectDefinition, error) {
	if o, ok := f.objects[id]; ok {
		return o, nil
	}
	return nil, application.ErrNotFound
}

func (f *fakeObjects) GetObjectNameByID(id int) (string, error) {
	o, err := f.GetObjectByID(id)
	if err != nil {
		return "", err
	}
	return o.Name, nil
}

func (f *fakeObjects) ObjectExists(id int) bool { _, ok := f.objects[id]; return ok }

func (f *fakeObjects) GetObjectsFromCategory(id int) ([]*domain.ObjectDefinition, error) {
	return f.GetObjectsFromCategories([]int{id})
}

func (f *fakeObjects) GetObjectsFromCategories(ids []int) ([]*domain.ObjectDefinition, error) {
	return f.sorted(func(o *domain.ObjectDefinition) bool { return inAny(o, ids) }), nil
}

func (f *fakeObjects) GetObjectsFromCategoryCount(id int) int {
	return f.GetObjectsFromCategoriesCount([]int{id})
}

func (f *fakeObjects) GetObjectsFromCategoriesCount(ids []int) int {
	objs, _ := f.GetObjectsFromCategories(ids)
	return len(objs)
}

func (f *fakeObjects) GetObjectsByName(filter string, excluded ...int) ([]*domain.ObjectDefinition, error) {
	filter = strings.ToLower(filter)
	return f.sorted(func(o *domain.ObjectDefinition) bool {
		return strings.Contains(strings.ToLower(o.Name), filter) && !inAny(o, excluded)
	}), nil
}

func (f *fakeObjects) GetApertureObjects() ([]*domain.ObjectDefinition, error) {
	return f.sorted(func(o *domain.ObjectDefinition) bool { return o.IsHoleProvider() }), nil
}

// fakeCategories returns fixed groups
type fakeCategories struct {
	groups []domain.CategoryGroup
	err    error
}

func (f *fakeCategories) CategoryGroups() ([]domain.CategoryGroup, error) {
	return f.groups, f.err
}

// fakeStore records transaction calls
type fakeStore struct {
	fakeCategories
	objects   []domain.ObjectMeta
	committed bool
	rolled    bool
	failOn    int // object id that fails to upsert
}

func (s *fakeStore) LoadMetadata(string) ([]domain.ObjectMeta, error) { return s.objects, nil }
func (s *fakeStore) Open(string) error                                { return nil }
func (s *fakeStore) Close() error                                     { return nil }
func (s *fakeStore) BeginTx() (ports.CatalogueTx, error)              { return &fakeTx{store: s}, nil }

type fakeTx struct {
	store   *fakeStore
	objects []domain.ObjectMeta
}

func (t *fakeTx) UpsertObject(meta *domain.ObjectMeta) error {
	if meta.ID == t.store.failOn {
		return errors.New("constraint failed")
	}
	t.objects = append(t.objects, *meta)
	return nil
}
func (t *fakeTx) DeleteObject(int) error                          { return nil }
func (t *fakeTx) UpsertGroup(*domain.CategoryGroup, int) error    { return nil }
func (t *fakeTx) UpsertCategory(int, *domain.Category, int) error { return nil }
func (t *fakeTx) Rollback() error                                 { t.store.rolled = true; return nil }
func (t *fakeTx) Commit() error {
	t.store.objects = append(t.store.objects, t.objects...)
	t.store.committed = true
	return nil
}

// fakeBodies records written bodies
type fakeBodies struct {
	written []int
}

func (b *fakeBodies) WriteBody(obj *domain.ObjectDefinition) error {
	b.written = append(b.written, obj.StateID)
	return nil
}
