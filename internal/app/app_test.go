package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/connorleisz/emojiTUI/internal/categories"
	"github.com/connorleisz/emojiTUI/internal/config"
	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/connorleisz/emojiTUI/internal/nav"
	"github.com/connorleisz/emojiTUI/internal/sched"
	"github.com/connorleisz/emojiTUI/internal/store"
)

func testData() *emoji.Data {
	recs := []emoji.Record{
		{ID: "grinning", Name: "Grinning Face", ShortNames: []string{"grinning"}, Native: "😀"},
		{ID: "joy", Name: "Face with Tears of Joy", ShortNames: []string{"joy"}, Native: "😂"},
		{ID: "+1", Name: "Thumbs Up Sign", ShortNames: []string{"+1", "thumbsup"}, Unified: "1F44D", Native: "👍", SkinTones: true},
		{ID: "dog", Name: "Dog Face", ShortNames: []string{"dog"}, Keywords: []string{"pet"}, Native: "🐶"},
		{ID: "cat", Name: "Cat Face", ShortNames: []string{"cat"}, Keywords: []string{"pet"}, Native: "🐱"},
		{ID: "pizza", Name: "Slice of Pizza", ShortNames: []string{"pizza"}, Native: "🍕"},
	}
	d := &emoji.Data{
		Categories: []emoji.CategoryData{
			{ID: "people", Name: "People", Emojis: []string{"grinning", "joy", "+1"}},
			{ID: "nature", Name: "Nature", Emojis: []string{"dog", "cat"}},
			{ID: "foods", Name: "Food", Emojis: []string{"pizza"}},
		},
		Emojis: make(map[string]emoji.Record),
	}
	for _, r := range recs {
		r.Search = emoji.BuildSearch(r)
		d.Emojis[r.ID] = r
	}
	return d
}

// countingTracker counts the ranking queries the strip issues
type countingTracker struct {
	*store.Tracker
	gets int
}

func (c *countingTracker) Get(perLine int) []string {
	c.gets++
	return c.Tracker.Get(perLine)
}

type harness struct {
	m       Model
	db      *store.DB
	tracker *countingTracker
	copied  []string
}

// newHarness mounts a picker with two emoji rows of three-cell columns.
// Recent starts with the tracker defaults +1 and grinning, which gives
//
//	search [0,0) recent [0,8) people [8,16) nature [16,24) foods [24,30)
func newHarness(t *testing.T, width int, mutate func(*config.Config)) *harness {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	cfg.PerLine = 2
	cfg.EmojiSize = 3
	if mutate != nil {
		mutate(cfg)
	}

	h := &harness{db: db, tracker: &countingTracker{Tracker: store.NewTracker(db)}}
	h.m = NewModel(Options{
		Config:  cfg,
		Data:    testData(),
		Store:   db,
		Tracker: h.tracker,
		Copy: func(e emoji.Emoji) error {
			h.copied = append(h.copied, e.Native)
			return nil
		},
	})
	h.send(tea.WindowSizeMsg{Width: width, Height: 20})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

// full ends the first-render phase and settles pending refreshes
func (h *harness) full() {
	h.send(sched.TimerMsg{ID: 1})
	h.frames()
}

func (h *harness) frames() {
	for i := 0; i < 3; i++ {
		h.send(sched.FrameMsg{})
	}
}

func (h *harness) key(s string) {
	var msg tea.KeyMsg
	switch s {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	h.send(msg)
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.key(string(r))
	}
}

func (h *harness) active() string {
	return h.m.ctl.Navigator().State().ActiveID
}

func (h *harness) geometry(id string) nav.Geometry {
	v := h.m.strip.view(h.m.ctl.Categories().Index(id))
	if v == nil {
		return nav.Geometry{}
	}
	return v.live
}

func TestFirstRenderThenFull(t *testing.T) {
	h := newHarness(t, 10, nil)
	if got := len(h.m.strip.views); got != 3 {
		t.Fatalf("views during first render = %d, want 3", got)
	}
	h.full()
	if got := len(h.m.strip.views); got != 5 {
		t.Fatalf("views after first render = %d, want 5", got)
	}
	if got := h.active(); got != categories.RecentID {
		t.Errorf("active = %q, want recent", got)
	}
}

func TestStripGeometry(t *testing.T) {
	h := newHarness(t, 10, nil)
	h.full()

	want := map[string]nav.Geometry{
		categories.SearchID: {Left: 0, Width: 0},
		categories.RecentID: {Left: 0, Width: 8, MaxMargin: 4},
		"people":            {Left: 8, Width: 8, MaxMargin: 1},
		"nature":            {Left: 16, Width: 8, MaxMargin: 4},
		"foods":             {Left: 24, Width: 6, MaxMargin: 2},
	}
	for id, g := range want {
		if got := h.geometry(id); got != g {
			t.Errorf("geometry(%s) = %+v, want %+v", id, got, g)
		}
	}
	if h.m.strip.ScrollWidth() != 30 || h.m.strip.ClientWidth() != 10 {
		t.Errorf("extents = %d/%d, want 30/10", h.m.strip.ScrollWidth(), h.m.strip.ClientWidth())
	}
}

func TestScrollClamps(t *testing.T) {
	h := newHarness(t, 10, nil)
	h.full()

	h.m.strip.SetScrollOffset(100)
	if got := h.m.strip.ScrollOffset(); got != 20 {
		t.Errorf("offset = %d, want clamped to 20", got)
	}
	h.m.strip.SetScrollOffset(-5)
	if got := h.m.strip.ScrollOffset(); got != 0 {
		t.Errorf("offset = %d, want clamped to 0", got)
	}
}

func TestWheelResolvesActive(t *testing.T) {
	h := newHarness(t, 10, nil)
	h.full()

	h.send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := h.m.strip.ScrollOffset(); got != 9 {
		t.Fatalf("offset after wheel = %d, want 9", got)
	}
	h.frames()
	if got := h.active(); got != "people" {
		t.Errorf("active = %q, want people", got)
	}
	if h.m.anchors.selected != "People" {
		t.Errorf("anchor selected = %q, want People", h.m.anchors.selected)
	}

	h.send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	h.frames()
	if got := h.active(); got != "nature" {
		t.Errorf("active at 18 = %q, want nature", got)
	}

	h.send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	h.frames()
	if got := h.m.strip.ScrollOffset(); got != 20 {
		t.Fatalf("offset = %d, want clamped to 20", got)
	}
	if got := h.active(); got != "foods" {
		t.Errorf("active at the end = %q, want foods", got)
	}
}

func TestTabJumpsToNextAnchor(t *testing.T) {
	h := newHarness(t, 10, nil)
	h.full()

	h.key("tab")
	if got := h.m.strip.ScrollOffset(); got != 9 {
		t.Fatalf("offset after tab = %d, want 9", got)
	}
	h.frames()
	if got := h.active(); got != "people" {
		t.Errorf("active = %q, want people", got)
	}
}

func TestAnchorClick(t *testing.T) {
	h := newHarness(t, 10, nil)
	h.full()

	spans := h.m.anchors.spans()
	var nature anchorSpan
	for _, s := range spans {
		if s.cat.ID == "nature" {
			nature = s
		}
	}
	h.send(tea.MouseMsg{X: nature.x0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := h.m.strip.ScrollOffset(); got != 17 {
		t.Fatalf("offset after anchor click = %d, want 17", got)
	}
	h.frames()
	if got := h.active(); got != "nature" {
		t.Errorf("active = %q, want nature", got)
	}
}

func TestSearchAndConfirm(t *testing.T) {
	h := newHarness(t, 30, nil)
	h.full()

	h.key("/")
	if !h.m.search.input.Focused() {
		t.Fatal("search box not focused after /")
	}
	h.typeText("dog")
	if !h.m.ctl.SearchActive() {
		t.Fatal("search not active after typing")
	}
	if got := h.m.ctl.SearchResults(); len(got) != 1 || got[0] != "dog" {
		t.Fatalf("results = %v, want [dog]", got)
	}
	if g := h.geometry("people"); g.Width != 0 {
		t.Errorf("people geometry during search = %+v, want collapsed", g)
	}
	h.frames()
	if got := h.active(); got != categories.SearchID {
		t.Errorf("active = %q, want search", got)
	}

	h.key("enter")
	picked := h.m.Picked()
	if len(picked) != 1 || picked[0].ID != "dog" {
		t.Fatalf("picked = %+v, want dog", picked)
	}
	if len(h.copied) != 1 || h.copied[0] != "🐶" {
		t.Errorf("copied = %v, want 🐶", h.copied)
	}
}

func TestEscClearsSearch(t *testing.T) {
	h := newHarness(t, 30, nil)
	h.full()

	h.key("/")
	h.typeText("pet")
	if got := h.m.ctl.SearchResults(); len(got) != 2 {
		t.Fatalf("results = %v, want dog and cat", got)
	}

	h.key("esc")
	if h.m.ctl.SearchActive() {
		t.Error("search still active after esc")
	}
	if v := h.m.search.input.Value(); v != "" {
		t.Errorf("search box = %q, want cleared", v)
	}
	if g := h.geometry("people"); g.Width == 0 {
		t.Error("people still hidden after leaving search")
	}

	h.key("esc")
	if h.m.search.input.Focused() {
		t.Error("second esc should blur the search box")
	}
}

func TestSearchNotFound(t *testing.T) {
	h := newHarness(t, 30, nil)
	h.full()

	h.key("/")
	h.typeText("zzz")
	if got := h.m.ctl.SearchResults(); got == nil || len(got) != 0 {
		t.Fatalf("results = %#v, want empty", got)
	}
	if view := h.m.View(); !strings.Contains(view, "No Emoji Found") {
		t.Errorf("View() missing not-found notice:\n%s", view)
	}
}

func TestMouseHoverAndClick(t *testing.T) {
	h := newHarness(t, 30, nil)
	h.full()
	rows := h.m.screen()

	// People starts at column 8; its first cell follows the gap.
	h.send(tea.MouseMsg{X: 9, Y: rows.strip + 1, Action: tea.MouseActionMotion})
	if rec := h.m.ctl.Hovered(); rec == nil || rec.ID != "grinning" {
		t.Fatalf("hovered = %+v, want grinning", rec)
	}
	if h.m.preview.rec == nil || h.m.preview.rec.ID != "grinning" {
		t.Error("preview not showing hovered emoji")
	}

	h.send(tea.MouseMsg{X: 12, Y: rows.strip + 1, Action: tea.MouseActionMotion})
	if rec := h.m.ctl.Hovered(); rec == nil || rec.ID != "+1" {
		t.Fatalf("hovered = %+v, want +1 (column 1, row 0)", rec)
	}

	h.send(tea.MouseMsg{X: 17, Y: rows.strip + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	picked := h.m.Picked()
	if len(picked) != 1 || picked[0].ID != "dog" {
		t.Fatalf("picked = %+v, want dog", picked)
	}
}

func TestKeyboardCursor(t *testing.T) {
	h := newHarness(t, 30, nil)
	h.full()

	h.key("right")
	if rec := h.m.ctl.Hovered(); rec == nil || rec.ID != "+1" {
		t.Fatalf("first move hovered %+v, want +1 (first recent)", rec)
	}
	h.key("right")
	if rec := h.m.ctl.Hovered(); rec == nil || rec.ID != "grinning" {
		t.Fatalf("second move hovered %+v, want grinning", rec)
	}

	h.key("enter")
	if picked := h.m.Picked(); len(picked) != 1 || picked[0].ID != "grinning" {
		t.Errorf("picked = %+v, want grinning", picked)
	}
}

func TestSkinKeysPersist(t *testing.T) {
	h := newHarness(t, 30, nil)
	h.full()

	h.key("3")
	if got := h.m.ctl.Skin(); got != 3 {
		t.Fatalf("Skin() = %d, want 3", got)
	}
	if v, ok := h.db.Get("skin"); !ok || v != "3" {
		t.Errorf("stored skin = %q, %v; want 3", v, ok)
	}

	rows := h.m.screen()
	h.send(tea.MouseMsg{X: 30 - 12 + 2, Y: rows.preview, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := h.m.ctl.Skin(); got != 2 {
		t.Errorf("Skin() after swatch click = %d, want 2", got)
	}
}

func TestSkinAppliedToSelection(t *testing.T) {
	h := newHarness(t, 30, func(c *config.Config) { c.Skin = 2 })
	h.full()

	h.key("/")
	h.typeText("thumbsup")
	h.key("enter")
	picked := h.m.Picked()
	if len(picked) != 1 || picked[0].Skin != 2 || picked[0].Unified != "1F44D-1F3FB" {
		t.Errorf("picked = %+v, want +1 with skin 2", picked)
	}
}

func TestMultiKeepsPicking(t *testing.T) {
	h := newHarness(t, 30, nil)
	h.m.opts.Multi = true
	h.full()

	rows := h.m.screen()
	for _, y := range []int{rows.strip + 1, rows.strip + 2} {
		h.send(tea.MouseMsg{X: 17, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	}
	if got := len(h.m.Picked()); got != 2 {
		t.Errorf("picked %d emojis, want 2", got)
	}
	if h.m.sess.statusMessage == "" {
		t.Error("no status message after copying")
	}
}

// clickEmoji scrolls id's cell in a browse category into view and clicks it
func (h *harness) clickEmoji(t *testing.T, id string) {
	t.Helper()
	s := h.m.strip
	for _, v := range s.views {
		if v.cat.ID == categories.RecentID || v.cat.ID == categories.SearchID {
			continue
		}
		for pos, rec := range v.items {
			if rec.ID != id {
				continue
			}
			x := v.live.Left + categoryGap + (pos/s.rows)*s.cellW
			h.m.ctl.Navigator().ScrollTo(x - categoryGap)
			h.frames()
			y := h.m.screen().strip + 1 + pos%s.rows
			h.send(tea.MouseMsg{X: x - s.offset, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
			h.frames()
			return
		}
	}
	t.Fatalf("%s is not in the strip", id)
}

func TestRecentGrowthRemeasures(t *testing.T) {
	// One emoji row: Recent grows a column per distinct pick. Its label is
	// seven cells, so after the third emoji the margin stays at zero.
	h := newHarness(t, 10, func(c *config.Config) { c.PerLine = 1 })
	h.m.opts.Multi = true
	h.full()

	for _, id := range []string{"dog", "joy", "cat"} {
		h.clickEmoji(t, id)
	}
	if got := h.geometry(categories.RecentID); got != (nav.Geometry{Left: 0, Width: 13}) {
		t.Fatalf("Recent geometry = %+v, want {0 13 0}", got)
	}
	for _, v := range h.m.strip.views {
		if v.geom != v.live {
			t.Errorf("%s memoized %+v, laid out at %+v", v.cat.ID, v.geom, v.live)
		}
	}

	// People now spans (13, 23]; before the remeasure it was (10, 20]
	h.m.ctl.Navigator().ScrollTo(21)
	h.frames()
	if got := h.active(); got != "people" {
		t.Errorf("active at 21 = %q, want people", got)
	}
}

func TestMeasureDoesNotReload(t *testing.T) {
	h := newHarness(t, 10, nil)
	h.full()

	h.tracker.gets = 0
	h.m.ctl.Relayout()
	h.frames()
	if h.tracker.gets != 0 {
		t.Errorf("re-measuring queried the tracker %d times, want 0", h.tracker.gets)
	}

	h.key("/")
	h.tracker.gets = 0
	h.key("d")
	h.frames()
	if h.tracker.gets != 1 {
		t.Errorf("one search keystroke queried the tracker %d times, want 1", h.tracker.gets)
	}
}

func TestViewRendersStrip(t *testing.T) {
	h := newHarness(t, 30, nil)
	h.full()

	view := h.m.View()
	for _, want := range []string{"Recent", "People", "😀", "🐶"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestOverlays(t *testing.T) {
	h := newHarness(t, 60, nil)
	h.full()

	h.key("?")
	if h.m.overlay != OverlayHelp {
		t.Fatalf("overlay = %v, want help", h.m.overlay)
	}
	h.key("esc")
	if h.m.overlay != OverlayNone {
		t.Fatal("esc should close the overlay")
	}

	if got := RenderInspect(nil, 1); !strings.Contains(got, "Hover") {
		t.Errorf("RenderInspect(nil) = %q", got)
	}
	rec := testData().Emojis["dog"]
	if got := RenderInspect(&rec, 1); !strings.Contains(got, "dog") {
		t.Errorf("RenderInspect(dog) missing id:\n%s", got)
	}
	if md := helpMarkdown(defaultKeyMap()); !strings.Contains(md, "next category") {
		t.Errorf("help markdown missing bindings:\n%s", md)
	}
}
