package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"planner/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

type helpEntry struct{ keys, desc string }

type helpSection struct {
	title   string
	entries []helpEntry
}

// fromBindings lists the bindings that carry help text
func fromBindings(bindings ...key.Binding) []helpEntry {
	var out []helpEntry
	for _, b := range bindings {
		if h := b.Help(); h.Key != "" {
			out = append(out, helpEntry{h.Key, h.Desc})
		}
	}
	return out
}

func helpSections() []helpSection {
	c, p := CatalogueKeys, PlanKeys
	return []helpSection{
		{"Catalogue", fromBindings(c.Up, c.Down, c.NextPage, c.PrevPage, c.Enter, c.Back, c.Search, c.Copy, c.Edit)},
		{"Plan", fromBindings(p.Up, p.FarUp, p.Drop, p.Cancel)},
		// global keys are owned by the app model
		{"General", []helpEntry{
			{"p", "show the plan"},
			{"u / r", "undo / redo"},
			{"tab", "toggle 2D / 3D"},
			{"?", "toggle help"},
			{"q / ctrl+c", "quit"},
		}},
	}
}

var placementRules = []string{
	"Doors and windows snap to the nearest wall on drop",
	"Doors, windows and free shapes are 2D only",
	"Cancelling a drag undoes what it placed",
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

var _ tea.Model = (*HelpModel)(nil)

func (m *HelpModel) Init() tea.Cmd {
	return nil
}

func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg { return SwitchToCatalogueMsg{} }
		}
	}
	return m, nil
}

// View lists every section's keys, then the placement rules
func (m *HelpModel) View() string {
	v := NewViewBuilder().Title("Planner Help").Subtitle("Floor-plan object catalogue")

	for _, s := range helpSections() {
		v.Line(styles.InputLabel.Render(s.title))
		for _, e := range s.entries {
			v.Line(fmt.Sprintf("  %s%s", styles.HelpKey.Render(fmt.Sprintf("%-14s", e.keys)), styles.HelpDesc.Render(e.desc)))
		}
		v.BlankLine()
	}

	v.Line(styles.InputLabel.Render("Placement"))
	for _, rule := range placementRules {
		v.Muted("  " + rule)
	}
	v.BlankLine()

	return v.Help(HelpKeys.Close).String()
}
