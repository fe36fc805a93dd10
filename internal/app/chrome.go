package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/connorleisz/emojiTUI/internal/categories"
	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/connorleisz/emojiTUI/internal/ui/styles"
	"github.com/muesli/reflow/truncate"
)

// anchorIcons label the anchor bar; unknown categories fall back to their
// name's first letter.
var anchorIcons = map[string]string{
	categories.RecentID: "🕘",
	"people":            "😀",
	"nature":            "🐻",
	"foods":             "🍔",
	"activity":          "⚽",
	"places":            "🚀",
	"objects":           "💡",
	"symbols":           "🔣",
	"flags":             "🏳",
	categories.CustomID: "🔧",
}

// anchorBar shows one anchor per anchor-visible category and underlines
// the active one.
type anchorBar struct {
	set      *categories.Set
	selected string
	native   bool
}

func (a *anchorBar) SetSelected(name string) {
	a.selected = name
}

type anchorSpan struct {
	cat    *categories.Category
	label  string
	x0, x1 int
}

func (a *anchorBar) icon(c *categories.Category) string {
	if icon, ok := anchorIcons[c.ID]; ok && a.native {
		return icon
	}
	if c.Name == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(c.Name)[:1]))
}

// spans lays the anchors out left to right, including their padding
func (a *anchorBar) spans() []anchorSpan {
	var out []anchorSpan
	x := 0
	for _, c := range a.set.All {
		if !c.Anchor {
			continue
		}
		label := a.icon(c)
		w := styles.Anchor.GetHorizontalPadding() + ansi.StringWidth(label)
		out = append(out, anchorSpan{cat: c, label: label, x0: x, x1: x + w})
		x += w
	}
	return out
}

// at returns the category whose anchor covers column x
func (a *anchorBar) at(x int) *categories.Category {
	for _, s := range a.spans() {
		if x >= s.x0 && x < s.x1 {
			return s.cat
		}
	}
	return nil
}

func (a *anchorBar) view(width int) string {
	var b strings.Builder
	for _, s := range a.spans() {
		style := styles.Anchor
		if s.cat.Name == a.selected {
			style = styles.AnchorSelected
		}
		b.WriteString(style.Render(s.label))
	}
	return ansi.Truncate(b.String(), width, "")
}

// searchBox wraps the text input the user types queries into
type searchBox struct {
	input textinput.Model
}

func newSearchBox() *searchBox {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return &searchBox{input: ti}
}

func (s *searchBox) Clear() {
	s.input.SetValue("")
}

func (s *searchBox) view(width int) string {
	s.input.PromptStyle = styles.SearchPrompt(s.input.Focused())
	s.input.Width = max(width-ansi.StringWidth(s.input.Prompt)-1, 1)
	return s.input.View()
}

// previewBar shows the hovered emoji, or the title when nothing is hovered
type previewBar struct {
	rec       *emoji.Record
	title     string
	idle      string
	native    bool
	showInfo  bool
	showSkins bool
}

func (p *previewBar) SetEmoji(rec *emoji.Record) {
	p.rec = rec
}

// swatchWidth is the columns one skin swatch takes
const swatchWidth = 2

// swatchAt returns the tone whose swatch covers column x of a bar width
// wide, or 0.
func (p *previewBar) swatchAt(x, width int) int {
	if !p.showSkins {
		return 0
	}
	start := width - emoji.MaxSkin*swatchWidth
	if x < start || x >= width {
		return 0
	}
	return (x-start)/swatchWidth + 1
}

func (p *previewBar) swatches(skin int) string {
	var b strings.Builder
	for tone := emoji.MinSkin; tone <= emoji.MaxSkin; tone++ {
		dot := "○"
		if tone == skin {
			dot = "●"
		}
		b.WriteString(styles.Swatch(tone, tone == skin).Render(dot))
		b.WriteString(" ")
	}
	return b.String()
}

func (p *previewBar) view(width, skin int, resolve func(string) (emoji.Record, bool)) string {
	right := ""
	if p.showSkins {
		right = p.swatches(skin)
	}
	room := width - lipgloss.Width(right)
	if room < 0 {
		room = 0
	}

	var top, bottom string
	switch {
	case !p.showInfo:
	case p.rec != nil:
		e := emoji.WithSkin(*p.rec, skin)
		glyph := e.Native
		if !p.native || glyph == "" {
			glyph = e.Colons
		}
		top = glyph + "  " + styles.Title.Render(e.Name)
		bottom = e.Colons
		if len(e.Emoticons) > 0 {
			bottom += "  " + strings.Join(e.Emoticons, " ")
		}
	default:
		top = styles.Title.Render(p.title)
		if rec, ok := resolve(p.idle); ok && p.native && rec.Native != "" {
			top = rec.Native + "  " + top
		}
	}

	top = truncate.StringWithTail(top, uint(room), "…")
	bottom = truncate.StringWithTail(bottom, uint(room), "…")

	first := top + strings.Repeat(" ", max(room-lipgloss.Width(top), 0)) + right
	return first + "\n" + styles.Muted.Render(bottom)
}
