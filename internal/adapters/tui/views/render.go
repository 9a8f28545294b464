package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"planner/internal/adapters/tui/styles"
)

// RenderHelpLine renders key bindings separated by bullets. Bindings without
// help text are skipped.
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage styles a status message; the empty message renders as nothing
func RenderMessage(message string, isError bool) string {
	switch {
	case message == "":
		return ""
	case isError:
		return styles.ErrorMsg.Render(message)
	default:
		return styles.Success.Render(message)
	}
}

// RenderLabelValue renders "label: value" with the label styled
func RenderLabelValue(label, value string) string {
	return styles.InputLabel.Render(label+":") + " " + value
}

// ViewBuilder accumulates the lines of a screen. Sections that need a gap
// after them (titles, messages) add a trailing blank line.
type ViewBuilder struct {
	lines []string
	tail  string
}

func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

func (v *ViewBuilder) section(s string) *ViewBuilder {
	v.lines = append(v.lines, s, "")
	return v
}

func (v *ViewBuilder) Title(title string) *ViewBuilder {
	return v.section(styles.Title.Render(title))
}

func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	return v.section(styles.Subtitle.Render(subtitle))
}

func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.lines = append(v.lines, text)
	return v
}

func (v *ViewBuilder) BlankLine() *ViewBuilder {
	return v.Line("")
}

func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Message adds a status message section; empty messages add nothing
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	return v.section(RenderMessage(message, isError))
}

// Raw appends text to the current line without a line break
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.tail += text
	return v
}

// Help ends the view with a key help line
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	return v.Raw(RenderHelpLine(bindings...))
}

// String joins the lines and wraps them in the app style
func (v *ViewBuilder) String() string {
	body := strings.Join(v.lines, "\n")
	if len(v.lines) > 0 {
		body += "\n"
	}
	return styles.App.Render(body + v.tail)
}
