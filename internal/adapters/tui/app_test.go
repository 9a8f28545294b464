package tui

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"planner/internal/adapters/tui/views"
	"planner/internal/application/catalogue"
	"planner/internal/application/drag"
	"planner/internal/bootstrap"
	"planner/internal/config"
	"planner/internal/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Config{
		ObjectsPath:   t.TempDir(),
		MetaFilename:  "catalog.db",
		Mode:          "2d",
		WallProximity: 0.5,
		HistoryDepth:  10,
		LogLevel:      "info",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := bootstrap.Open(cfg, logger, bootstrap.OpenOptions{Create: true})
	if err != nil {
		t.Fatalf("failed to open workspace: %v", err)
	}
	t.Cleanup(func() { w.Close() })

	manifest := &domain.CatalogueManifest{
		Groups: []domain.CategoryGroup{
			{ID: 10, Name: "Furniture", Categories: []domain.Category{{ID: 3, Name: "Chairs"}}},
			{ID: 20, Name: "Openings", Categories: []domain.Category{{ID: 5, Name: "Doors"}}},
		},
		Objects: []*domain.ObjectDefinition{
			{ID: 1, StateID: 11, Name: "Chair", Categories: []int{3}},
			{ID: 2, StateID: 12, Name: "Door", Categories: []int{5}, Flags: domain.FlagHoleProvider, PlanSVG: "<svg/>"},
		},
	}
	if _, err := w.Import(context.Background(), manifest); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	app, err := NewApp(w, nil)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }
func runes(s string) tea.KeyMsg       { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// send delivers a message and feeds back the view message its command produces.
// Only use it for keys whose command is a view message, never a timer.
func send(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	_, cmd := a.Update(msg)
	if cmd == nil {
		return
	}
	switch out := cmd().(type) {
	case views.StartDragMsg, views.DragFinishedMsg, views.SwitchToHelpMsg, views.SwitchToCatalogueMsg:
		a.Update(out)
	}
}

func TestApp_DragChairOntoPlan(t *testing.T) {
	a := newTestApp(t)

	send(t, a, keyMsg(tea.KeyEnter)) // Chairs
	if a.w.Controller.Screen.Get() != catalogue.ScreenObjects {
		t.Fatal("expected objects screen after opening a category")
	}

	send(t, a, keyMsg(tea.KeyEnter)) // Chair
	if a.state != ViewPlan || !a.plan.Dragging() {
		t.Fatalf("expected an active drag in the plan view, got state %v", a.state)
	}
	if got := len(a.w.Scene.Objects()); got != 1 {
		t.Fatalf("expected the chair to appear on first move, got %d objects", got)
	}

	send(t, a, keyMsg(tea.KeyRight))
	send(t, a, keyMsg(tea.KeyRight))
	send(t, a, keyMsg(tea.KeyEnter))

	if a.state != ViewCatalogue {
		t.Errorf("expected catalogue after drop, got %v", a.state)
	}
	if !strings.Contains(a.status, "Placed: place Chair") {
		t.Errorf("unexpected status %q", a.status)
	}
	objs := a.w.Scene.Objects()
	if len(objs) != 1 {
		t.Fatalf("expected 1 object, got %d", len(objs))
	}
	if got := objs[0].Position.Get(); math.Abs(got.X-3.5) > 1e-6 || math.Abs(got.Z-2) > 1e-6 {
		t.Errorf("expected chair at plan (3.5, 2), got %v", got)
	}

	send(t, a, runes("u"))
	if got := len(a.w.Scene.Objects()); got != 0 {
		t.Errorf("expected undo to remove the chair, got %d objects", got)
	}
	send(t, a, runes("r"))
	if got := len(a.w.Scene.Objects()); got != 1 {
		t.Errorf("expected redo to restore the chair, got %d objects", got)
	}
}

func TestApp_CancelDragUndoesPlacement(t *testing.T) {
	a := newTestApp(t)

	send(t, a, keyMsg(tea.KeyEnter))
	send(t, a, keyMsg(tea.KeyEnter))
	send(t, a, keyMsg(tea.KeyEsc))

	if got := len(a.w.Scene.Objects()); got != 0 {
		t.Errorf("expected no objects after cancel, got %d", got)
	}
	if _, redo := a.w.History.Len(); redo != 1 {
		t.Errorf("expected the cancelled placement on the redo sequence, got %d", redo)
	}
}

func TestApp_DoorRefusedIn3D(t *testing.T) {
	a := newTestApp(t)

	send(t, a, runes("j"))
	send(t, a, runes("j"))
	send(t, a, keyMsg(tea.KeyEnter)) // Doors
	send(t, a, keyMsg(tea.KeyTab))
	if a.w.Mode.Get() != domain.Mode3D {
		t.Fatal("expected tab to switch to 3d")
	}

	send(t, a, keyMsg(tea.KeyEnter))
	if a.state != ViewCatalogue || a.plan.Dragging() {
		t.Errorf("expected the drag to be refused, got state %v", a.state)
	}
	if a.status != drag.NoticeCannotAdd3D || !a.statusErr {
		t.Errorf("expected refusal notice, got %q", a.status)
	}
}

func TestApp_DoorBindsToWall(t *testing.T) {
	a := newTestApp(t)

	send(t, a, runes("j"))
	send(t, a, runes("j"))
	send(t, a, keyMsg(tea.KeyEnter))
	send(t, a, keyMsg(tea.KeyEnter))

	// Centre of the room is (3, 2); the south wall runs along y=0
	send(t, a, runes("K"))
	send(t, a, runes("K"))
	send(t, a, keyMsg(tea.KeyEnter))

	if !strings.Contains(a.status, "Placed") {
		t.Fatalf("expected placement, got %q", a.status)
	}
	objs := a.w.Scene.Objects()
	if len(objs) != 1 || objs[0].Binding == nil || objs[0].Binding.WallID != "south" {
		t.Errorf("expected door bound to the south wall, got %+v", objs)
	}
}

func TestApp_Search(t *testing.T) {
	a := newTestApp(t)

	a.Update(runes("/"))
	a.Update(runes("D"))
	a.Update(runes("o"))

	if got := a.w.Controller.Search.Get(); got != "Do" {
		t.Errorf("expected search text Do, got %q", got)
	}
	model := a.w.Controller.Objects.Get()
	if model.Title != catalogue.BackTitle || len(model.Objects) != 1 || model.Objects[0].Name != "Door" {
		t.Errorf("unexpected search results %+v", model)
	}

	// Global keys are typed into the search box
	a.Update(runes("u"))
	if got := a.w.Controller.Search.Get(); got != "Dou" {
		t.Errorf("expected u to reach the search box, got %q", got)
	}

	a.Update(keyMsg(tea.KeyEsc))
	if a.w.Controller.Screen.Get() != catalogue.ScreenCategories {
		t.Error("expected clearing the search to return to categories")
	}
}

func TestApp_EditOpensBody(t *testing.T) {
	a := newTestApp(t)

	send(t, a, keyMsg(tea.KeyEnter))
	_, cmd := a.Update(runes("e"))
	if cmd == nil {
		t.Fatal("expected an editor command")
	}
	msg, ok := cmd().(views.OpenEditorMsg)
	if !ok || !strings.HasSuffix(msg.Path, "11") {
		t.Errorf("expected body path of state 11, got %+v", msg)
	}
}

func TestApp_View(t *testing.T) {
	a := newTestApp(t)

	out := a.View()
	for _, want := range []string{"Catalogue", "Furniture", "Chairs", "All", "2D"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view", want)
		}
	}

	send(t, a, runes("p"))
	if a.state != ViewPlan || !strings.Contains(a.View(), "Plan") {
		t.Error("expected plan view")
	}
	send(t, a, keyMsg(tea.KeyEsc))
	if a.state != ViewCatalogue {
		t.Errorf("expected esc to leave the plan view, got %v", a.state)
	}

	send(t, a, runes("?"))
	if a.state != ViewHelp || !strings.Contains(a.View(), "Planner Help") {
		t.Error("expected help view")
	}
}
