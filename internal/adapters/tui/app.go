// Package tui is the terminal front end: the catalogue panel, a plan view that
// turns cursor keys into drag gestures, and editor integration.
package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"planner/internal/adapters/tui/styles"
	"planner/internal/adapters/tui/views"
	"planner/internal/application/catalogue"
	"planner/internal/application/drag"
	"planner/internal/application/history"
	"planner/internal/bootstrap"
	"planner/internal/domain"
	"planner/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewCatalogue ViewState = iota
	ViewPlan
	ViewHelp
)

// AppKeyMap holds the bindings that work outside text input and drags
type AppKeyMap struct {
	Undo       key.Binding
	Redo       key.Binding
	ToggleMode key.Binding
	Plan       key.Binding
}

var AppKeys = AppKeyMap{
	Undo: key.NewBinding(
		key.WithKeys("u", "ctrl+z"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("r", "ctrl+y"),
		key.WithHelp("r", "redo"),
	),
	ToggleMode: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "2d/3d"),
	),
	Plan: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "plan"),
	),
}

// App is the main TUI application model
type App struct {
	w      *bootstrap.Workspace
	editor ports.EditorOpener

	state     ViewState
	catalogue *views.CatalogueModel
	plan      *views.PlanModel
	help      *views.HelpModel

	status    string
	statusErr bool
	dragStart int

	width  int
	height int
}

// NewApp initializes the catalogue controller and builds the views
func NewApp(w *bootstrap.Workspace, ed ports.EditorOpener) (*App, error) {
	if err := w.Controller.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize catalogue: %w", err)
	}
	floor := func() *domain.Floor { return w.Scene.Apartment().CurrentFloor() }

	return &App{
		w:         w,
		editor:    ed,
		state:     ViewCatalogue,
		catalogue: views.NewCatalogueModel(w.Controller, w.Objects, w.Objects),
		plan:      views.NewPlanModel(floor, w.ScreenPoint),
		help:      views.NewHelpModel(),
	}, nil
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.catalogue.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.catalogue.SetSize(msg.Width, msg.Height)
		a.plan.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if a.handleGlobalKey(msg) {
			return a, nil
		}

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToCatalogueMsg:
		a.state = ViewCatalogue
		return a, nil

	case views.StartDragMsg:
		a.startDrag(msg.ObjectID)
		return a, nil

	case views.DragFinishedMsg:
		a.finishDrag(msg)
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Editor failed: %v", msg.err), true)
			return a, nil
		}
		// Drop cached bodies so the edit shows up
		if err := a.w.Objects.Refresh(); err != nil {
			a.setStatus(err.Error(), true)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewCatalogue:
		_, cmd = a.catalogue.Update(msg)
	case ViewPlan:
		_, cmd = a.plan.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// handleGlobalKey applies undo, redo, mode and plan keys unless a view owns the keyboard
func (a *App) handleGlobalKey(msg tea.KeyMsg) bool {
	if a.state == ViewHelp || a.plan.Dragging() || a.catalogue.Searching() {
		return false
	}

	switch {
	case key.Matches(msg, AppKeys.Undo):
		top, _ := a.w.History.Top()
		if a.w.History.Undo() {
			a.setStatus("Undone: "+history.NameOf(top), false)
		} else {
			a.setStatus("Nothing to undo", false)
		}
	case key.Matches(msg, AppKeys.Redo):
		_, top := a.w.History.Top()
		if a.w.History.Redo() {
			a.setStatus("Redone: "+history.NameOf(top), false)
		} else {
			a.setStatus("Nothing to redo", false)
		}
	case key.Matches(msg, AppKeys.ToggleMode):
		mode := domain.Mode3D
		if a.w.Mode.Get() == domain.Mode3D {
			mode = domain.Mode2D
		}
		a.w.Mode.Set(mode)
		a.setStatus("Mode: "+mode.String(), false)
	case key.Matches(msg, AppKeys.Plan):
		if a.state == ViewPlan {
			a.state = ViewCatalogue
		} else {
			a.state = ViewPlan
		}
	default:
		return false
	}
	return true
}

func (a *App) startDrag(objectID int) {
	model := a.catalogue.Objects()
	idx := slices.IndexFunc(model.Objects, func(e catalogue.ObjectEntry) bool { return e.ID == objectID })
	if idx < 0 {
		return
	}

	g, err := a.plan.Start(objectID, model.Objects[idx].Name)
	if err != nil {
		a.setStatus(err.Error(), true)
		return
	}

	a.dragStart = a.w.History.Executed()
	model.BeginDrag(objectID, g)

	if err := a.w.Controller.LastError(); err != nil {
		a.plan.Abort()
		a.setStatus(err.Error(), true)
		return
	}
	notices := a.w.Notices.Drain()
	if slices.Contains(notices, drag.NoticeCannotAdd3D) {
		a.plan.Abort()
		a.setStatus(drag.NoticeCannotAdd3D, true)
		return
	}

	a.setStatus("", false)
	a.state = ViewPlan
	a.plan.Follow()
}

func (a *App) finishDrag(msg views.DragFinishedMsg) {
	a.state = ViewCatalogue
	notices := a.w.Notices.Drain()
	placed := a.w.History.Executed() > a.dragStart

	switch {
	case msg.Cancelled && placed:
		a.w.History.Undo()
		a.setStatus("Drag cancelled", false)
	case msg.Cancelled:
		a.setStatus("Drag cancelled", false)
	case len(notices) > 0:
		a.setStatus(strings.Join(notices, "; "), true)
	case placed:
		top, _ := a.w.History.Top()
		a.setStatus("Placed: "+history.NameOf(top), false)
	default:
		a.setStatus("Nothing placed", false)
	}
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view with a status bar
func (a *App) View() string {
	var body string
	switch a.state {
	case ViewPlan:
		body = a.plan.View()
	case ViewHelp:
		return a.help.View()
	default:
		body = a.catalogue.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar())
}

func (a *App) statusBar() string {
	mode := a.w.Mode.Get().String()
	undo, redo := a.w.History.Len()

	badge := styles.StatusKey.Background(styles.ModeColor(mode)).Render(strings.ToUpper(mode))
	text := fmt.Sprintf("undo %d  redo %d", undo, redo)
	if a.status != "" {
		text += "  " + views.RenderMessage(a.status, a.statusErr)
	}
	return badge + styles.StatusBar.Render(text) + "  " + views.RenderHelpLine(AppKeys.Undo, AppKeys.Redo, AppKeys.ToggleMode, AppKeys.Plan)
}
