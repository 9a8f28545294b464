package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"planner/internal/application"
	"planner/internal/config"
	"planner/internal/domain"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		ObjectsPath:   t.TempDir(),
		MetaFilename:  "catalog.db",
		Mode:          "2d",
		WallProximity: 0.5,
		HistoryDepth:  10,
		LogLevel:      "info",
	}
}

func testManifest() *domain.CatalogueManifest {
	return &domain.CatalogueManifest{
		Groups: []domain.CategoryGroup{
			{ID: 10, Name: "Furniture", Categories: []domain.Category{{ID: 3, Name: "Chairs"}}},
			{ID: 20, Name: "Openings", Categories: []domain.Category{{ID: 5, Name: "Doors"}}},
		},
		Objects: []*domain.ObjectDefinition{
			{ID: 1, Name: "Chair", Categories: []int{3}, Geometry: domain.Geometry{Size: domain.Vec3{X: 0.5, Y: 1, Z: 0.5}}},
			{ID: 2, Name: "Door", Categories: []int{5}, Flags: domain.FlagHoleProvider, PlanSVG: "<svg/>"},
		},
	}
}

func openImported(t *testing.T, cfg config.Config) *Workspace {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := Open(cfg, logger, OpenOptions{Create: true})
	if err != nil {
		t.Fatalf("failed to open workspace: %v", err)
	}
	t.Cleanup(func() { w.Close() })

	stats, err := w.Import(context.Background(), testManifest())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if stats.ObjectsUpserted != 2 {
		t.Errorf("expected 2 objects imported, got %d", stats.ObjectsUpserted)
	}
	return w
}

func TestOpen_MissingCatalogue(t *testing.T) {
	_, err := Open(testConfig(t), nil, OpenOptions{})
	if !errors.Is(err, application.ErrCatalogueUnavailable) {
		t.Errorf("expected ErrCatalogueUnavailable, got %v", err)
	}
}

func TestOpen_AfterImport(t *testing.T) {
	cfg := testConfig(t)
	first := openImported(t, cfg)
	first.Close()

	w, err := Open(cfg, nil, OpenOptions{})
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer w.Close()

	if !w.Objects.ObjectExists(1) || !w.Objects.ObjectExists(domain.FreeShapeObjectID) {
		t.Error("expected imported objects and the free shape")
	}
	if err := w.Controller.Initialize(); err != nil {
		t.Fatalf("failed to initialize controller: %v", err)
	}
	if got := len(w.Controller.Categories.Get().Groups); got != 2 {
		t.Errorf("expected 2 groups, got %d", got)
	}
}

func TestWorkspace_Drag2D(t *testing.T) {
	w := openImported(t, testConfig(t))

	if err := w.Drag(1, []domain.Vec2{{X: 1, Y: 1}, {X: 2, Y: 3}}); err != nil {
		t.Fatalf("drag failed: %v", err)
	}
	objs := w.Scene.Objects()
	if len(objs) != 1 {
		t.Fatalf("expected 1 object, got %d", len(objs))
	}
	if got := objs[0].Position.Get(); math.Abs(got.X-2) > 1e-6 || math.Abs(got.Z-3) > 1e-6 {
		t.Errorf("expected chair at plan (2, 3), got %v", got)
	}

	if err := w.Drag(2, []domain.Vec2{{X: 3, Y: 0.2}}); err != nil {
		t.Fatalf("drag failed: %v", err)
	}
	if undo, _ := w.History.Len(); undo != 2 {
		t.Errorf("expected 2 history entries, got %d", undo)
	}

	if err := w.Drag(2, []domain.Vec2{{X: 3, Y: 2}}); err != nil {
		t.Fatalf("drag failed: %v", err)
	}
	if msgs := w.Notices.Messages(); len(msgs) != 1 {
		t.Errorf("expected one notice for the door in mid-room, got %v", msgs)
	}

	out, err := w.FloorYAML()
	if err != nil {
		t.Fatalf("failed to render floor: %v", err)
	}
	if !strings.Contains(string(out), "wall: south") {
		t.Errorf("expected bound door in floor output:\n%s", out)
	}
}

func TestWorkspace_Drag3D(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mode = "3d"
	w := openImported(t, cfg)

	err := w.Drag(2, []domain.Vec2{{X: 3, Y: 0.2}})
	if !errors.Is(err, application.ErrPlacementDisallowed) {
		t.Errorf("expected ErrPlacementDisallowed, got %v", err)
	}

	if err := w.Drag(1, []domain.Vec2{{X: 4, Y: 2}}); err != nil {
		t.Fatalf("drag failed: %v", err)
	}
	objs := w.Scene.Objects()
	if len(objs) != 1 {
		t.Fatalf("expected 1 object, got %d", len(objs))
	}
	inst := objs[0]
	if got := inst.Position.Get(); math.Abs(got.X-4) > 1e-6 || math.Abs(got.Z-2) > 1e-6 {
		t.Errorf("expected chair at (4, 0, 2), got %v", got)
	}
	if inst.Layer.Get() != domain.LayerObject {
		t.Error("expected object layer after drop")
	}
}

func TestWorkspace_DragErrors(t *testing.T) {
	w := openImported(t, testConfig(t))

	var verr *application.ValidationError
	if err := w.Drag(1, nil); !errors.As(err, &verr) {
		t.Errorf("expected validation error for empty path, got %v", err)
	}
	if err := w.Drag(99, []domain.Vec2{{}}); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDefaultApartment(t *testing.T) {
	a := DefaultApartment()
	f := a.CurrentFloor()
	if f == nil || len(f.Walls) != 4 {
		t.Fatalf("expected one floor with 4 walls, got %+v", f)
	}
	if w := f.NearestWall(domain.Vec2{X: 5.9, Y: 2}, 0.5); w == nil || w.ID != "east" {
		t.Errorf("expected east wall, got %v", w)
	}
}
