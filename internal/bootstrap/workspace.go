// Package bootstrap wires the catalogue, scene and history services shared by
// the planner binaries.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"planner/internal/adapters/filesystem"
	"planner/internal/adapters/memscene"
	"planner/internal/adapters/sqlite"
	"planner/internal/adapters/yamlcodec"
	"planner/internal/application"
	"planner/internal/application/catalogue"
	"planner/internal/application/commands"
	"planner/internal/application/drag"
	"planner/internal/application/history"
	"planner/internal/config"
	"planner/internal/domain"
	"planner/internal/metrics"
)

// Viewport used by the plan and 3D cameras of headless sessions
var Viewport = domain.Vec2{X: 1280, Y: 720}

// Workspace holds one editing session: the catalogue, the apartment and its history
type Workspace struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.Collector

	Store   *sqlite.Catalog
	Paths   *filesystem.Paths
	Bodies  *filesystem.BodyStore
	Objects *filesystem.ObjectsProvider

	Scene   *memscene.Scene
	Pool    *memscene.Pool
	Preview *memscene.Preview
	Notices *memscene.Notices
	Tools   *memscene.Tools
	History *history.Stack
	Mode    *domain.Property[domain.EditMode]

	PlanCamera   domain.OrthoCamera
	GroundCamera domain.PerspectiveCamera

	Factory    *drag.Factory
	Controller *catalogue.Controller
}

// OpenOptions controls how Open treats a missing catalogue
type OpenOptions struct {
	// Create makes an empty catalogue instead of failing; the catalogue is not refreshed
	Create bool
}

// Open builds a workspace from configuration. Without Create, a missing or
// unreadable catalogue is an error.
func Open(cfg config.Config, logger *slog.Logger, opts OpenOptions) (*Workspace, error) {
	if logger == nil {
		logger = slog.Default()
	}

	w := &Workspace{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.NewCollector(),
		Paths:   filesystem.NewPaths(cfg.ObjectsPath, cfg.MetaFilename),
	}

	metaPath := filepath.Join(w.Paths.ObjectsPath(), w.Paths.MetaFilename())
	if !opts.Create {
		if _, err := os.Stat(metaPath); err != nil {
			return nil, &application.CatalogueError{Path: metaPath, Reason: "not found, run planner-cli import first", Err: err}
		}
	}

	w.Store = sqlite.NewCatalog()
	if err := w.Store.Open(metaPath); err != nil {
		return nil, &application.CatalogueError{Path: metaPath, Reason: "cannot open", Err: err}
	}

	codec := yamlcodec.NewCodec()
	w.Bodies = filesystem.NewBodyStore(w.Paths, codec)
	w.Objects = filesystem.NewObjectsProvider(w.Paths, w.Store, codec,
		filesystem.WithLogger(logger),
		filesystem.WithCacheObserver(w.Metrics),
	)
	if !opts.Create {
		if err := w.Objects.Refresh(); err != nil {
			w.Store.Close()
			return nil, err
		}
	}

	apartment, err := loadApartment(cfg.ApartmentPath)
	if err != nil {
		w.Store.Close()
		return nil, err
	}

	w.Scene = memscene.NewScene(apartment,
		memscene.WithWallProximity(cfg.WallProximity),
		memscene.WithLogger(logger),
	)
	w.Pool = memscene.NewPool()
	w.Preview = memscene.NewPreview()
	w.Notices = memscene.NewNotices(logger)
	w.Tools = memscene.NewTools()
	w.History = history.NewStack(
		history.WithMaxDepth(cfg.HistoryDepth),
		history.WithObserver(w.Metrics),
	)
	w.Mode = domain.NewProperty(cfg.EditMode())

	w.PlanCamera = domain.OrthoCamera{Viewport: Viewport}
	w.GroundCamera = domain.PerspectiveCamera{
		Position: domain.Vec3{Y: 30, Z: 30},
		Up:       domain.Vec3{Y: 1},
		Fovy:     60,
		Viewport: Viewport,
	}

	w.Factory = drag.NewFactory(drag.Deps{
		Scene:    w.Scene,
		Pool:     w.Pool,
		History:  w.History,
		Preview:  w.Preview,
		Tools:    w.Tools,
		Notifier: w.Notices,
		Plan:     domain.CameraPlane{Name: "plan", Plane: domain.PlanPlane, Camera: w.PlanCamera},
		Ground:   domain.CameraPlane{Name: "ground", Plane: domain.GroundPlane, Camera: w.GroundCamera},
		Logger:   logger,
	}, w.Mode)
	w.Controller = catalogue.NewController(w.Objects, w.Store, w.Factory, catalogue.WithLogger(logger))

	return w, nil
}

func loadApartment(path string) (*domain.Apartment, error) {
	if path == "" {
		return DefaultApartment(), nil
	}
	return yamlcodec.LoadApartment(filesystem.ExpandHome(path))
}

// DefaultApartment is a single 6 by 4 room on floor 0
func DefaultApartment() *domain.Apartment {
	corners := []domain.Vec2{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 4}, {X: 0, Y: 4}}
	names := []string{"south", "east", "north", "west"}
	floor := &domain.Floor{Index: 0}
	for i, start := range corners {
		floor.Walls = append(floor.Walls, &domain.Wall{
			ID:        names[i],
			Start:     start,
			End:       corners[(i+1)%len(corners)],
			Thickness: 0.2,
		})
	}
	return domain.NewApartment(floor)
}

// Close releases the catalogue store
func (w *Workspace) Close() error {
	if w.Controller != nil {
		w.Controller.Dispose()
	}
	return w.Store.Close()
}

// ScreenPoint maps a plan point to the screen coordinate the active mode's camera sees it at
func (w *Workspace) ScreenPoint(p domain.Vec2) (domain.Vec2, error) {
	if w.Mode.Get() == domain.Mode3D {
		s, ok := w.GroundCamera.Project(domain.Vec3{X: p.X, Z: p.Y})
		if !ok {
			return domain.Vec2{}, fmt.Errorf("point %v is not visible from the 3D camera", p)
		}
		return s, nil
	}
	return w.PlanCamera.ScreenPoint(p), nil
}

// Drag simulates a catalogue drag of an object along plan points. It returns
// ErrPlacementDisallowed when the current mode refuses the object.
func (w *Workspace) Drag(objectID int, path []domain.Vec2) error {
	if len(path) == 0 {
		return &application.ValidationError{Field: "path", Message: "at least one point is required"}
	}

	screens := make([]domain.Vec2, 0, len(path))
	for _, p := range path {
		s, err := w.ScreenPoint(p)
		if err != nil {
			return err
		}
		screens = append(screens, s)
	}

	obj, err := commands.NewShowObjectCommand(w.Objects, objectID).Execute(context.Background())
	if err != nil {
		return err
	}

	processor := w.Factory.Create(obj)
	if processor == nil {
		return fmt.Errorf("object %d in %s mode: %w", objectID, w.Mode.Get(), application.ErrPlacementDisallowed)
	}

	g := domain.NewGesture(screens[0])
	processor.ObjectDragBegan(g, obj)
	for _, s := range screens {
		g.Move(domain.PointerEvent{Position: s})
	}
	g.End()
	return nil
}

// Import writes a manifest into the catalogue and reloads the index
func (w *Workspace) Import(ctx context.Context, manifest *domain.CatalogueManifest) (*domain.ImportStats, error) {
	stats, err := commands.NewImportCatalogueCommand(w.Store, w.Bodies, manifest).Execute(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.Objects.Refresh(); err != nil {
		return nil, fmt.Errorf("failed to reload catalogue: %w", err)
	}
	return stats, nil
}

// FloorYAML renders the current floor
func (w *Workspace) FloorYAML() ([]byte, error) {
	return yamlcodec.EncodeFloor(w.Scene.Apartment().CurrentFloor())
}

// NewLogger builds a text logger at the configured level
func NewLogger(cfg config.Config, out io.Writer) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}
