package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"planner/internal/adapters/tui/styles"
	"planner/internal/domain"
)

// Plan grid resolution, in cells per meter. Terminal cells are about twice as
// tall as they are wide.
const (
	cellsPerMeterX = 4
	cellsPerMeterY = 2
	planMargin     = 0.5
)

// PlanKeyMap defines key bindings for the plan view
type PlanKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	FarUp    key.Binding
	FarDown  key.Binding
	FarLeft  key.Binding
	FarRight key.Binding
	Drop     key.Binding
	Cancel   key.Binding
}

var PlanKeys = PlanKeyMap{
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑↓←→", "move")),
	Down:     key.NewBinding(key.WithKeys("j", "down")),
	Left:     key.NewBinding(key.WithKeys("h", "left")),
	Right:    key.NewBinding(key.WithKeys("l", "right")),
	FarUp:    key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("HJKL", "move 1m")),
	FarDown:  key.NewBinding(key.WithKeys("J", "shift+down")),
	FarLeft:  key.NewBinding(key.WithKeys("H", "shift+left")),
	FarRight: key.NewBinding(key.WithKeys("L", "shift+right")),
	Drop:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "drop")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// ScreenMapper converts a plan point to the pointer position of the active view
type ScreenMapper func(plan domain.Vec2) (domain.Vec2, error)

// PlanModel draws the current floor and turns cursor keys into a drag gesture
type PlanModel struct {
	ViewState
	floor    func() *domain.Floor
	screen   ScreenMapper
	gesture  *domain.Gesture
	objectID int
	name     string
	cursor   domain.Vec2
	step     float64
}

var _ tea.Model = (*PlanModel)(nil)

// NewPlanModel creates a plan view over the floor returned by floor
func NewPlanModel(floor func() *domain.Floor, screen ScreenMapper) *PlanModel {
	return &PlanModel{floor: floor, screen: screen, step: 0.25}
}

func (m *PlanModel) Init() tea.Cmd {
	return nil
}

// Dragging reports whether a gesture is in progress
func (m *PlanModel) Dragging() bool {
	return m.gesture != nil
}

// Cursor returns the cursor position in plan coordinates
func (m *PlanModel) Cursor() domain.Vec2 {
	return m.cursor
}

// Start opens a gesture for the named object at the centre of the floor. The
// caller hands the gesture to the catalogue, then calls Follow.
func (m *PlanModel) Start(objectID int, name string) (*domain.Gesture, error) {
	lo, hi := m.bounds()
	m.cursor = lo.Lerp(hi, 0.5)

	origin, err := m.screen(m.cursor)
	if err != nil {
		return nil, err
	}
	m.gesture = domain.NewGesture(origin)
	m.objectID = objectID
	m.name = name
	m.ClearMessage()
	return m.gesture, nil
}

// Follow sends the cursor position to the gesture
func (m *PlanModel) Follow() {
	if m.gesture == nil {
		return
	}
	p, err := m.screen(m.cursor)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.gesture.Move(domain.PointerEvent{Position: p})
}

// Abort ends the gesture without reporting a drop
func (m *PlanModel) Abort() {
	if m.gesture != nil {
		m.gesture.End()
	}
	m.gesture = nil
}

func (m *PlanModel) finish(cancelled bool) tea.Cmd {
	id := m.objectID
	if m.gesture != nil {
		m.gesture.End()
	}
	m.gesture = nil
	return func() tea.Msg {
		return DragFinishedMsg{ObjectID: id, Cancelled: cancelled}
	}
}

// Update handles messages for the plan view
func (m *PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var delta domain.Vec2
	switch {
	case key.Matches(keyMsg, PlanKeys.Up):
		delta = domain.Vec2{Y: -m.step}
	case key.Matches(keyMsg, PlanKeys.Down):
		delta = domain.Vec2{Y: m.step}
	case key.Matches(keyMsg, PlanKeys.Left):
		delta = domain.Vec2{X: -m.step}
	case key.Matches(keyMsg, PlanKeys.Right):
		delta = domain.Vec2{X: m.step}
	case key.Matches(keyMsg, PlanKeys.FarUp):
		delta = domain.Vec2{Y: -1}
	case key.Matches(keyMsg, PlanKeys.FarDown):
		delta = domain.Vec2{Y: 1}
	case key.Matches(keyMsg, PlanKeys.FarLeft):
		delta = domain.Vec2{X: -1}
	case key.Matches(keyMsg, PlanKeys.FarRight):
		delta = domain.Vec2{X: 1}

	case key.Matches(keyMsg, PlanKeys.Drop):
		if m.gesture == nil {
			return m, nil
		}
		return m, m.finish(false)

	case key.Matches(keyMsg, PlanKeys.Cancel):
		if m.gesture == nil {
			return m, func() tea.Msg {
				return SwitchToCatalogueMsg{}
			}
		}
		return m, m.finish(true)

	default:
		return m, nil
	}

	m.cursor = m.clamp(m.cursor.Add(delta))
	m.Follow()
	return m, nil
}

func (m *PlanModel) bounds() (lo, hi domain.Vec2) {
	f := m.floor()
	if f == nil || len(f.Walls) == 0 {
		return domain.Vec2{}, domain.Vec2{X: 4, Y: 4}
	}
	lo = domain.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	hi = domain.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, w := range f.Walls {
		for _, p := range []domain.Vec2{w.Start, w.End} {
			lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
			hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
		}
	}
	return lo, hi
}

func (m *PlanModel) clamp(p domain.Vec2) domain.Vec2 {
	lo, hi := m.bounds()
	p.X = math.Max(lo.X-planMargin, math.Min(hi.X+planMargin, p.X))
	p.Y = math.Max(lo.Y-planMargin, math.Min(hi.Y+planMargin, p.Y))
	return p
}

// planGrid is a character raster of the floor
type planGrid struct {
	origin domain.Vec2
	cells  [][]rune
}

func newPlanGrid(lo, hi domain.Vec2) *planGrid {
	origin := lo.Sub(domain.Vec2{X: planMargin, Y: planMargin})
	cols := int(math.Ceil((hi.X-lo.X+2*planMargin)*cellsPerMeterX)) + 1
	rows := int(math.Ceil((hi.Y-lo.Y+2*planMargin)*cellsPerMeterY)) + 1
	g := &planGrid{origin: origin, cells: make([][]rune, rows)}
	for r := range g.cells {
		g.cells[r] = []rune(strings.Repeat(" ", cols))
	}
	return g
}

func (g *planGrid) cell(p domain.Vec2) (row, col int, ok bool) {
	col = int(math.Round((p.X - g.origin.X) * cellsPerMeterX))
	row = int(math.Round((p.Y - g.origin.Y) * cellsPerMeterY))
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return 0, 0, false
	}
	return row, col, true
}

func (g *planGrid) set(p domain.Vec2, r rune) {
	if row, col, ok := g.cell(p); ok {
		g.cells[row][col] = r
	}
}

// RenderPlan rasterizes walls and placed objects; the cursor is marked with '@'
func RenderPlan(f *domain.Floor, lo, hi, cursor domain.Vec2, showCursor bool) []string {
	g := newPlanGrid(lo, hi)
	if f != nil {
		for _, w := range f.Walls {
			steps := int(math.Ceil(w.Length()*cellsPerMeterX)) + 1
			for i := 0; i <= steps; i++ {
				g.set(w.Start.Lerp(w.End, float64(i)/float64(steps)), '#')
			}
		}
		for _, inst := range f.Objects() {
			pos := inst.Position.Get()
			glyph := 'o'
			if inst.Object != nil && inst.Object.Name != "" {
				glyph = []rune(strings.ToUpper(inst.Object.Name))[0]
			}
			if inst.Binding != nil {
				glyph = '+'
			}
			g.set(domain.Vec2{X: pos.X, Y: pos.Z}, glyph)
		}
	}
	if showCursor {
		g.set(cursor, '@')
	}

	lines := make([]string, len(g.cells))
	for i, row := range g.cells {
		lines[i] = string(row)
	}
	return lines
}

func styleGlyphs(line string) string {
	var b strings.Builder
	for _, r := range line {
		s := string(r)
		switch r {
		case ' ':
			b.WriteString(s)
		case '#':
			b.WriteString(styles.PlanWall.Render(s))
		case '+':
			b.WriteString(styles.PlanHole.Render(s))
		case '@':
			b.WriteString(styles.PlanCursor.Render(s))
		default:
			b.WriteString(styles.PlanObject.Render(s))
		}
	}
	return b.String()
}

// View renders the plan
func (m *PlanModel) View() string {
	v := NewViewBuilder().Title("Plan")

	f := m.floor()
	if f != nil {
		v.Subtitle(fmt.Sprintf("Floor %d, %d objects", f.Index, len(f.Objects())))
	}

	lo, hi := m.bounds()
	for _, line := range RenderPlan(f, lo, hi, m.cursor, true) {
		v.Line(styleGlyphs(line))
	}
	v.BlankLine()

	v.Line(RenderLabelValue("Cursor", fmt.Sprintf("%.2f, %.2f", m.cursor.X, m.cursor.Y)))
	if m.gesture != nil {
		v.Line(RenderLabelValue("Dragging", fmt.Sprintf("%s (%d)", m.name, m.objectID)))
	}
	v.BlankLine()
	v.Message(m.Message, m.MessageErr)

	if m.gesture != nil {
		return v.Help(PlanKeys.Up, PlanKeys.FarUp, PlanKeys.Drop, PlanKeys.Cancel).String()
	}
	return v.Help(PlanKeys.Up, PlanKeys.FarUp, PlanKeys.Cancel).String()
}
