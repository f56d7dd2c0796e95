// Package help contains the help overlay component.
package help

import (
	"fmt"
	"strings"

	"github.com/zjrosen/datecalc/internal/keys"
	"github.com/zjrosen/datecalc/internal/log"
	"github.com/zjrosen/datecalc/internal/ui/markdown"
	"github.com/zjrosen/datecalc/internal/ui/overlay"
	"github.com/zjrosen/datecalc/internal/ui/styles"
)

const (
	panelWidth = 48
	title      = "Help"
)

// Markdown lists every key binding grouped by section.
func Markdown(sections []keys.Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", s.Title)
		for _, binding := range s.Bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "- `%s` %s\n", h.Key, h.Desc)
		}
	}
	return b.String()
}

// Model renders the help overlay. The markdown is rendered once per width
// change.
type Model struct {
	style    string
	width    int
	height   int
	rendered string
}

// New creates a help model. style is the glamour style ("dark" or "light").
func New(style string) Model {
	return Model{style: style}
}

// SetSize updates the viewport and re-renders the content.
func (m Model) SetSize(width, height int) Model {
	if width == m.width && height == m.height && m.rendered != "" {
		return m
	}
	m.width = width
	m.height = height
	m.rendered = m.render()
	return m
}

func (m Model) innerWidth() int {
	return max(min(panelWidth, m.width)-2, 10)
}

func (m Model) render() string {
	source := Markdown(keys.HelpSections())
	r, err := markdown.New(m.innerWidth(), m.style)
	if err != nil {
		log.ErrorErr(log.CatUI, "creating help renderer", err)
		return source
	}
	out, err := r.Render(source)
	if err != nil {
		log.ErrorErr(log.CatUI, "rendering help", err)
		return source
	}
	return strings.Trim(out, "\n")
}

// View renders the help panel on its own.
func (m Model) View() string {
	content := m.rendered
	if content == "" {
		content = m.render()
	}
	height := strings.Count(content, "\n") + 3
	if m.height > 0 {
		height = min(height, m.height)
	}
	return styles.RenderPanel(content, title, m.innerWidth()+2, height, true)
}

// Overlay renders the help panel centered over bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
