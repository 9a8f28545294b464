package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"planner/internal/adapters/tui/styles"
	"planner/internal/application/catalogue"
	"planner/internal/domain"
	"planner/internal/ports"
)

// CatalogueKeyMap defines key bindings for the catalogue view
type CatalogueKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Enter    key.Binding
	Back     key.Binding
	Search   key.Binding
	Copy     key.Binding
	Edit     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var CatalogueKeys = CatalogueKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter", "l", "right"),
		key.WithHelp("enter", "open/drag"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "h", "left", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit body"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// catalogueChrome is the number of lines around the list: title, search box,
// subtitle, group headers, pager, message, help and the status bar
const catalogueChrome = 16

// BodyLocator resolves where an object body is persisted
type BodyLocator interface {
	BodyPath(stateID int) string
}

// catalogueRow is one selectable line; group carries the header shown above it
type catalogueRow struct {
	group    string
	category *catalogue.CategoryEntry
	object   *catalogue.ObjectEntry
}

// CatalogueModel renders the catalogue controller: a category screen, an object
// screen and the search box that feeds it.
type CatalogueModel struct {
	ViewState
	controller *catalogue.Controller
	objects    ports.ObjectsProvider
	bodies     BodyLocator
	input      textinput.Model
	searching  bool
	rows       []catalogueRow
	pager      *Paginator
	subs       domain.Subscriptions
}

// NewCatalogueModel creates a catalogue view bound to an initialized controller
func NewCatalogueModel(controller *catalogue.Controller, objects ports.ObjectsProvider, bodies BodyLocator) *CatalogueModel {
	input := textinput.New()
	input.Placeholder = "Search objects..."

	m := &CatalogueModel{
		controller: controller,
		objects:    objects,
		bodies:     bodies,
		input:      input,
		pager:      NewPaginator(15),
	}
	m.subs.Add(
		controller.Screen.Subscribe(func(catalogue.Screen) { m.rebuild(true) }),
		controller.Categories.Subscribe(func(catalogue.CategoriesModel) { m.rebuild(false) }),
		controller.Objects.Subscribe(func(catalogue.ObjectsModel) { m.rebuild(true) }),
	)
	m.rebuild(true)
	return m
}

// SetSize updates the view dimensions and the page size
func (m *CatalogueModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(m.listHeight(catalogueChrome))
}

// Init initializes the catalogue view
var _ tea.Model = (*CatalogueModel)(nil)

func (m *CatalogueModel) Init() tea.Cmd {
	return nil
}

// Dispose drops the controller subscriptions
func (m *CatalogueModel) Dispose() {
	m.subs.Clear()
}

// Searching reports whether the search box has focus
func (m *CatalogueModel) Searching() bool {
	return m.searching
}

// Objects returns the object model currently shown, for starting drags
func (m *CatalogueModel) Objects() catalogue.ObjectsModel {
	return m.controller.Objects.Get()
}

func (m *CatalogueModel) rebuild(resetCursor bool) {
	m.rows = m.rows[:0]
	if m.controller.Screen.Get() == catalogue.ScreenObjects {
		model := m.controller.Objects.Get()
		for i := range model.Objects {
			m.rows = append(m.rows, catalogueRow{group: model.Title, object: &model.Objects[i]})
		}
	} else {
		for _, g := range m.controller.Categories.Get().Groups {
			for i := range g.Categories {
				m.rows = append(m.rows, catalogueRow{group: g.Name, category: &g.Categories[i]})
			}
		}
	}

	if resetCursor {
		m.pager.Reset()
	}
	m.pager.SetTotal(len(m.rows))
}

func (m *CatalogueModel) selected() *catalogueRow {
	c := m.pager.Cursor()
	if c >= 0 && c < len(m.rows) {
		return &m.rows[c]
	}
	return nil
}

// Update handles messages for the catalogue view
func (m *CatalogueModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		return m, m.updateSearch(keyMsg)
	}

	m.ClearMessage()

	switch {
	case key.Matches(keyMsg, CatalogueKeys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, CatalogueKeys.Up):
		m.pager.CursorUp()

	case key.Matches(keyMsg, CatalogueKeys.Down):
		m.pager.CursorDown()

	case key.Matches(keyMsg, CatalogueKeys.NextPage):
		m.pager.NextPage()

	case key.Matches(keyMsg, CatalogueKeys.PrevPage):
		m.pager.PrevPage()

	case key.Matches(keyMsg, CatalogueKeys.Enter):
		return m, m.activate()

	case key.Matches(keyMsg, CatalogueKeys.Back):
		if m.controller.Screen.Get() == catalogue.ScreenObjects {
			m.input.SetValue("")
			m.controller.BackClicked()
		}

	case key.Matches(keyMsg, CatalogueKeys.Search):
		m.searching = true
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(keyMsg, CatalogueKeys.Copy):
		if row := m.selected(); row != nil && row.object != nil {
			id := fmt.Sprintf("%d", row.object.ID)
			if err := clipboard.WriteAll(id); err != nil {
				m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
			} else {
				m.SetMessage(fmt.Sprintf("Copied %s", id), false)
			}
		}

	case key.Matches(keyMsg, CatalogueKeys.Edit):
		return m, m.editSelected()

	case key.Matches(keyMsg, CatalogueKeys.Help):
		return m, func() tea.Msg {
			return SwitchToHelpMsg{}
		}
	}

	return m, nil
}

func (m *CatalogueModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		m.input.SetValue("")
		m.controller.Search.Set("")
		return nil
	case tea.KeyEnter, tea.KeyDown, tea.KeyTab:
		m.searching = false
		m.input.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.controller.Search.Get() {
		m.controller.Search.Set(v)
		if err := m.controller.LastError(); err != nil {
			m.SetMessage(err.Error(), true)
		}
	}
	return cmd
}

func (m *CatalogueModel) activate() tea.Cmd {
	row := m.selected()
	if row == nil {
		return nil
	}
	if row.category != nil {
		if err := m.controller.CategoryClicked(*row.category); err != nil {
			m.SetMessage(err.Error(), true)
		}
		return nil
	}
	id := row.object.ID
	return func() tea.Msg {
		return StartDragMsg{ObjectID: id}
	}
}

func (m *CatalogueModel) editSelected() tea.Cmd {
	row := m.selected()
	if row == nil || row.object == nil || m.bodies == nil {
		return nil
	}
	obj, err := m.objects.GetObjectByID(row.object.ID)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	if obj.ID == domain.FreeShapeObjectID {
		m.SetMessage("The free shape has no stored body", true)
		return nil
	}
	path := m.bodies.BodyPath(obj.StateID)
	return func() tea.Msg {
		return OpenEditorMsg{Path: path}
	}
}

// View renders the catalogue
func (m *CatalogueModel) View() string {
	v := NewViewBuilder().Title("Catalogue")

	if m.searching || m.input.Value() != "" {
		v.Line(styles.InputFocused.Render(m.input.View())).BlankLine()
	}

	if m.controller.Screen.Get() == catalogue.ScreenObjects {
		v.Subtitle(m.controller.Objects.Get().Title)
	} else {
		v.Subtitle("Categories")
	}

	if len(m.rows) == 0 {
		v.Muted("Nothing here").BlankLine()
	} else {
		start, end := m.pager.VisibleRange()
		lastGroup := ""
		for i := start; i < end; i++ {
			row := m.rows[i]
			if row.category != nil && row.group != lastGroup {
				v.Line(styles.GroupHeader.Render(row.group))
				lastGroup = row.group
			}
			v.Line(m.renderRow(row, i == m.pager.Cursor()))
		}
		if m.pager.TotalPages() > 1 {
			v.BlankLine().Muted(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
		}
		v.BlankLine()
	}

	v.Message(m.Message, m.MessageErr)

	if m.searching {
		return v.Help(CatalogueKeys.Enter, CatalogueKeys.Back).String()
	}
	return v.Help(
		CatalogueKeys.Up, CatalogueKeys.Down, CatalogueKeys.Enter, CatalogueKeys.Back,
		CatalogueKeys.Search, CatalogueKeys.Copy, CatalogueKeys.Help, CatalogueKeys.Quit,
	).String()
}

func (m *CatalogueModel) renderRow(row catalogueRow, selected bool) string {
	var text string
	style := styles.ObjectRow

	switch {
	case row.category != nil:
		text = fmt.Sprintf("  %s (%d)", row.category.Name, row.category.Count)
		style = styles.CategoryRow
		if row.category.Synthetic {
			style = styles.SyntheticRow
		}
	case row.object != nil:
		text = fmt.Sprintf("  %4d  %s", row.object.ID, row.object.Name)
		if row.object.Flags.Has(domain.FlagHoleProvider) {
			text += "  [" + row.object.Flags.String() + "]"
			style = styles.ApertureRow
		}
	}

	if selected {
		return styles.RowSelected.Render(strings.TrimLeft(text, " "))
	}
	return style.Render(text)
}
