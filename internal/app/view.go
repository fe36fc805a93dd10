package app

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/connorleisz/emojiTUI/internal/ui/styles"
)

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.overlay != OverlayNone {
		return m.renderOverlay()
	}

	skin := m.ctl.Skin()
	parts := []string{m.anchors.view(m.width)}
	if !m.ctl.Categories().HideSearch {
		parts = append(parts, m.search.view(m.width))
	}
	parts = append(parts, m.strip.render(skin))
	if m.cfg.ShowPreview || m.cfg.ShowSkinTones {
		parts = append(parts, m.preview.view(m.width, skin, m.ctl.Resolve))
	}
	parts = append(parts, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderFooter() string {
	if msg := m.sess.statusMessage; msg != "" {
		style := styles.StatusSuccess
		if m.sess.statusIsError {
			style = styles.StatusError
		}
		return style.Render(ansi.Truncate(msg, m.width, "…"))
	}
	return m.help.View(m.keys)
}

func (m Model) renderOverlay() string {
	box := styles.OverlayBorder()
	inner := min(m.width-4, 76)
	if inner < 10 {
		inner = 10
	}

	var content string
	switch m.overlay {
	case OverlayHelp:
		content = RenderHelp(m.keys, inner, m.opts.Dark)
	case OverlayInspect:
		rec := m.ctl.Hovered()
		if rec == nil {
			if r, ok := m.strip.record(m.cursor); ok {
				rec = &r
			}
		}
		content = RenderInspect(rec, m.ctl.Skin())
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		box.Width(inner).Render(content))
}
