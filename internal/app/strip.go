package app

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/connorleisz/emojiTUI/internal/categories"
	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/connorleisz/emojiTUI/internal/nav"
	"github.com/connorleisz/emojiTUI/internal/picker"
	"github.com/connorleisz/emojiTUI/internal/ui/styles"
	"github.com/muesli/reflow/wordwrap"
)

// categoryGap is the blank column opening every category; anchor jumps land
// just past it.
const categoryGap = 1

// categoryView is one category laid out in the strip
type categoryView struct {
	strip *strip
	cat   *categories.Category
	index int

	items  []emoji.Record
	hidden bool

	// live is the current layout; geom is what Measure last memoized
	live nav.Geometry
	geom nav.Geometry
}

// Measure memoizes the live layout. Content changes reflow the strip
// when they happen, so measuring never touches the store.
func (v *categoryView) Measure() {
	v.geom = v.live
}

// Refresh reloads this view's emojis and lays the strip out again
func (v *categoryView) Refresh() {
	v.loadItems()
	v.strip.layout()
}

func (v *categoryView) Geometry() nav.Geometry {
	return v.geom
}

func (v *categoryView) Contains(x int) bool {
	return !v.hidden && nav.Contains(v.geom, x)
}

func (v *categoryView) SetVisibility(vis nav.Visibility) {
	v.hidden = vis == nav.Hidden
	v.strip.layout()
}

func (v *categoryView) loadItems() {
	ctl := v.strip.ctl
	var ids []string
	switch v.cat.ID {
	case categories.SearchID:
		ids = ctl.SearchResults()
	case categories.RecentID:
		ids = ctl.RecentEmojis()
	default:
		ids = v.cat.Emojis
	}

	v.items = v.items[:0]
	for _, id := range ids {
		if rec, ok := ctl.Resolve(id); ok {
			v.items = append(v.items, rec)
		}
	}
}

func (v *categoryView) columns() int {
	rows := v.strip.rows
	return (len(v.items) + rows - 1) / rows
}

func (v *categoryView) labelWidth() int {
	return ansi.StringWidth(v.cat.Name) + 1
}

// notFound reports whether the view shows the empty search notice
func (v *categoryView) notFound() bool {
	return v.cat.ID == categories.SearchID && len(v.items) == 0 && v.strip.ctl.SearchActive()
}

// strip is the horizontally scrolling body of the picker. It is both the
// navigator's viewport and the controller's renderer.
type strip struct {
	ctl   *picker.Controller
	views []*categoryView

	offset int
	width  int
	total  int
	rows   int
	cellW  int
	native bool

	notFoundEmoji string

	hover cell
}

// cell addresses one emoji: a category index and a position inside it
type cell struct {
	cat int
	pos int
}

var noCell = cell{cat: -1, pos: -1}

func newStrip(rows, cellW int, native bool) *strip {
	if rows < 1 {
		rows = picker.DefaultPerLine
	}
	if cellW < 2 {
		cellW = 3
	}
	return &strip{rows: rows, cellW: cellW, native: native, hover: noCell}
}

func (s *strip) ScrollOffset() int { return s.offset }

func (s *strip) SetScrollOffset(x int) {
	s.offset = clamp(x, 0, s.maxOffset())
}

func (s *strip) ClientWidth() int { return s.width }

func (s *strip) ScrollWidth() int { return s.total }

func (s *strip) maxOffset() int {
	if s.total <= s.width {
		return 0
	}
	return s.total - s.width
}

// Expose mounts a view for each category handed over by the controller
func (s *strip) Expose(cats []*categories.Category) {
	known := make(map[string]*categoryView, len(s.views))
	for _, v := range s.views {
		known[v.cat.ID] = v
	}

	set := s.ctl.Categories()
	views := make([]*categoryView, 0, len(cats))
	for _, c := range cats {
		v, ok := known[c.ID]
		if !ok {
			v = &categoryView{strip: s, cat: c}
		}
		delete(known, c.ID)
		v.index = set.Index(c.ID)
		views = append(views, v)
	}
	for _, gone := range known {
		s.ctl.Detach(gone.index)
	}
	s.views = views
	s.reflow()

	for _, v := range views {
		s.ctl.Attach(v.index, v)
	}
}

// reflow reloads every view's emojis and lays the strip out again
func (s *strip) reflow() {
	for _, v := range s.views {
		v.loadItems()
	}
	s.layout()
}

// layout assigns live geometry left to right. Hidden categories collapse to
// nothing at the origin; empty ones take no space.
func (s *strip) layout() {
	x := 0
	for _, v := range s.views {
		if v.hidden {
			v.live = nav.Geometry{}
			continue
		}
		grid := v.columns() * s.cellW
		label := v.labelWidth()
		if v.notFound() {
			grid = s.notFoundWidth()
		}
		if grid == 0 {
			v.live = nav.Geometry{Left: x}
			continue
		}

		g := nav.Geometry{Left: x, Width: max(grid, label) + categoryGap}
		if label > grid {
			g.MaxMargin = label - grid
		}
		v.live = g
		x += g.Width
	}
	s.total = x
	s.offset = clamp(s.offset, 0, s.maxOffset())
}

func (s *strip) notFoundWidth() int {
	if s.width > 0 {
		return s.width - categoryGap
	}
	return 20
}

func (s *strip) view(i int) *categoryView {
	for _, v := range s.views {
		if v.index == i {
			return v
		}
	}
	return nil
}

// record returns the emoji at c
func (s *strip) record(c cell) (emoji.Record, bool) {
	v := s.view(c.cat)
	if v == nil || v.hidden || c.pos < 0 || c.pos >= len(v.items) {
		return emoji.Record{}, false
	}
	return v.items[c.pos], true
}

// hit maps a click at column x, emoji row row of the visible window to a
// cell.
func (s *strip) hit(x, row int) (cell, bool) {
	if row < 0 || row >= s.rows || x < 0 || x >= s.width {
		return noCell, false
	}
	sx := s.offset + x
	for _, v := range s.views {
		g := v.live
		if v.hidden || g.Width == 0 || sx < g.Left+categoryGap || sx >= g.Left+g.Width {
			continue
		}
		col := (sx - g.Left - categoryGap) / s.cellW
		pos := col*s.rows + row
		if pos >= len(v.items) {
			return noCell, false
		}
		return cell{cat: v.index, pos: pos}, true
	}
	return noCell, false
}

// visible returns the views that currently occupy strip space
func (s *strip) visible() []*categoryView {
	var out []*categoryView
	for _, v := range s.views {
		if !v.hidden && v.live.Width > 0 && len(v.items) > 0 {
			out = append(out, v)
		}
	}
	return out
}

// reveal scrolls the least amount that brings c fully into view. It
// reports whether the offset changed.
func (s *strip) reveal(c cell) bool {
	v := s.view(c.cat)
	if v == nil {
		return false
	}
	x0 := v.live.Left + categoryGap + (c.pos/s.rows)*s.cellW
	x1 := x0 + s.cellW
	before := s.offset
	switch {
	case x0 < s.offset:
		s.SetScrollOffset(x0 - categoryGap)
	case x1 > s.offset+s.width:
		s.SetScrollOffset(x1 - s.width)
	}
	return s.offset != before
}

func (s *strip) glyph(rec emoji.Record, skin int) string {
	e := emoji.WithSkin(rec, skin)
	g := e.Native
	if !s.native || g == "" {
		g = rec.Text
		if g == "" || ansi.StringWidth(g) >= s.cellW {
			g = ansi.Truncate(rec.ID, s.cellW-1, "")
		}
	}
	if w := ansi.StringWidth(g); w < s.cellW {
		g += strings.Repeat(" ", s.cellW-w)
	} else if w > s.cellW {
		g = ansi.Truncate(g, s.cellW, "")
	}
	return g
}

// render draws the visible window: one label line and one line per emoji
// row.
func (s *strip) render(skin int) string {
	lines := make([]strings.Builder, s.rows+1)

	for _, v := range s.views {
		g := v.live
		if v.hidden || g.Width == 0 {
			continue
		}
		inner := g.Width - categoryGap
		pad := strings.Repeat(" ", categoryGap)

		label := styles.CategoryLabel.Render(v.cat.Name)
		lines[0].WriteString(pad + label + strings.Repeat(" ", inner-ansi.StringWidth(v.cat.Name)))

		if v.notFound() {
			s.renderNotFound(lines[1:], inner)
			continue
		}
		for r := 0; r < s.rows; r++ {
			lines[r+1].WriteString(pad)
			used := 0
			for col := 0; col < v.columns(); col++ {
				pos := col*s.rows + r
				if pos >= len(v.items) {
					break
				}
				style := styles.Cell
				if s.hover == (cell{cat: v.index, pos: pos}) {
					style = styles.CellHovered
				}
				lines[r+1].WriteString(style.Render(s.glyph(v.items[pos], skin)))
				used += s.cellW
			}
			lines[r+1].WriteString(strings.Repeat(" ", inner-used))
		}
	}

	out := make([]string, len(lines))
	for i := range lines {
		line := ansi.Cut(lines[i].String(), s.offset, s.offset+s.width)
		if w := ansi.StringWidth(line); w < s.width {
			line += strings.Repeat(" ", s.width-w)
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

func (s *strip) renderNotFound(lines []strings.Builder, width int) {
	text := "No Emoji Found"
	if s.notFoundEmoji != "" {
		if rec, ok := s.ctl.Resolve(s.notFoundEmoji); ok && s.native && rec.Native != "" {
			text = rec.Native + "  " + text
		}
	}
	wrapped := strings.Split(wordwrap.String(text, width), "\n")
	for r := range lines {
		line := ""
		if r < len(wrapped) {
			line = wrapped[r]
		}
		line = ansi.Truncate(line, width, "")
		lines[r].WriteString(strings.Repeat(" ", categoryGap))
		lines[r].WriteString(styles.Muted.Render(line))
		lines[r].WriteString(strings.Repeat(" ", width-ansi.StringWidth(line)))
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
