package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/muesli/reflow/wordwrap"
)

// Overlay identifies the modal drawn over the picker
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayInspect
)

// helpMarkdown builds the help page from the key map
func helpMarkdown(k keyMap) string {
	var b strings.Builder
	b.WriteString("# emojiTUI\n\n")
	b.WriteString("Scroll the strip sideways, jump with the category bar, or type to search.\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, group := range k.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\nThe mouse works too: the wheel scrolls, clicking a category icon jumps to it and clicking a swatch changes the skin tone.\n")
	return b.String()
}

// RenderHelp renders the help page for the given width
func RenderHelp(k keyMap, width int, dark bool) string {
	style := "light"
	if dark {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	md := helpMarkdown(k)
	if err != nil {
		return wordwrap.String(md, width)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return wordwrap.String(md, width)
	}
	return strings.Trim(out, "\n")
}

// RenderInspect shows the hovered emoji as highlighted JSON
func RenderInspect(rec *emoji.Record, skin int) string {
	if rec == nil {
		return "Hover an emoji to inspect it."
	}
	data, err := json.MarshalIndent(emoji.WithSkin(*rec, skin), "", "  ")
	if err != nil {
		return fmt.Sprintf("cannot encode %s: %v", rec.ID, err)
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(data), "json", "terminal256", "monokai"); err != nil {
		return string(data)
	}
	return strings.TrimRight(buf.String(), "\n")
}
