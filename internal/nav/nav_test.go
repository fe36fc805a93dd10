package nav

import (
	"testing"

	"github.com/connorleisz/emojiTUI/internal/categories"
	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/connorleisz/emojiTUI/internal/sched"
)

type fakeRegion struct {
	geom     Geometry
	hidden   bool
	measured int
}

func (r *fakeRegion) Measure()            { r.measured++ }
func (r *fakeRegion) Refresh()            {}
func (r *fakeRegion) Geometry() Geometry  { return r.geom }
func (r *fakeRegion) Contains(x int) bool { return !r.hidden && Contains(r.geom, x) }
func (r *fakeRegion) SetVisibility(v Visibility) {
	r.hidden = v == Hidden
}

type fakeViewport struct {
	offset   int
	client   int
	scroll   int
	assigned []int
}

func (v *fakeViewport) ScrollOffset() int { return v.offset }
func (v *fakeViewport) SetScrollOffset(x int) {
	v.offset = x
	v.assigned = append(v.assigned, x)
}
func (v *fakeViewport) ClientWidth() int { return v.client }
func (v *fakeViewport) ScrollWidth() int { return v.scroll }

type fakeModes struct {
	nav    *Navigator
	active bool
	exits  int
}

func (m *fakeModes) SearchActive() bool { return m.active }
func (m *fakeModes) ExitSearch() {
	m.active = false
	m.exits++
	m.nav.Invalidate()
}

type fixture struct {
	set     *categories.Set
	nav     *Navigator
	vp      *fakeViewport
	sched   *sched.Manual
	modes   *fakeModes
	regions map[string]*fakeRegion
	changes []string
}

// newFixture builds [Search, Recent, People, Nature] with Recent at 0,
// People at 300, Nature at 600, each 300 wide, in a 300 wide viewport.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		set: categories.Assemble(categories.Options{Base: []emoji.CategoryData{
			{ID: "people", Name: "Smileys & People", Emojis: []string{"grinning"}},
			{ID: "nature", Name: "Animals & Nature", Emojis: []string{"dog"}},
		}}),
		vp:      &fakeViewport{client: 300, scroll: 900},
		sched:   sched.NewManual(),
		regions: make(map[string]*fakeRegion),
	}
	f.nav = New(f.set, f.vp, f.sched, func(c *categories.Category) {
		id := ""
		if c != nil {
			id = c.ID
		}
		f.changes = append(f.changes, id)
	})
	f.modes = &fakeModes{nav: f.nav}
	f.nav.SetModes(f.modes)

	lefts := map[string]int{"recent": 0, "people": 300, "nature": 600}
	for i, c := range f.set.All {
		r := &fakeRegion{}
		if left, ok := lefts[c.ID]; ok {
			r.geom = Geometry{Left: left, Width: 300}
		}
		f.regions[c.ID] = r
		f.nav.Attach(i, r)
	}
	f.nav.MeasureAll()
	return f
}

func (f *fixture) scroll(x int) {
	f.nav.OnScroll(x)
	f.sched.Settle(10)
}

func (f *fixture) active() string {
	return f.nav.State().ActiveID
}

func TestResolveInterval(t *testing.T) {
	f := newFixture(t)
	f.scroll(320)
	if got := f.active(); got != "people" {
		t.Errorf("active at 320 = %q, want people", got)
	}
	if f.nav.State().Direction != Forward {
		t.Errorf("Direction = %v, want Forward", f.nav.State().Direction)
	}

	f.scroll(310)
	if got := f.active(); got != "people" {
		t.Errorf("active at 310 = %q, want people", got)
	}
	if f.nav.State().Direction != Backward {
		t.Errorf("Direction = %v, want Backward", f.nav.State().Direction)
	}
}

func TestResolveBoundaries(t *testing.T) {
	f := newFixture(t)

	for _, x := range []int{0, 1, 150, 299} {
		f.scroll(x)
		if got := f.active(); got != "recent" {
			t.Errorf("active at %d = %q, want recent (first anchor-visible)", x, got)
		}
	}

	for _, x := range []int{600, 601, 750} {
		f.scroll(x)
		if got := f.active(); got != "nature" {
			t.Errorf("active at %d = %q, want nature (last)", x, got)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	f := newFixture(t)
	f.scroll(320)
	n := len(f.changes)

	f.nav.Resolve()
	f.nav.Resolve()
	if got := f.active(); got != "people" {
		t.Errorf("active = %q, want people", got)
	}
	if len(f.changes) != n {
		t.Errorf("duplicate notifications: %v", f.changes)
	}
}

func TestScrollCoalescing(t *testing.T) {
	f := newFixture(t)
	f.nav.OnScroll(100)
	f.nav.OnScroll(320)
	f.nav.OnScroll(450)

	if got := f.sched.PendingFrames(); got != 1 {
		t.Fatalf("PendingFrames() = %d, want 1", got)
	}
	f.sched.Frame()
	if got := f.active(); got != "people" {
		t.Errorf("active = %q, want people", got)
	}
	if len(f.changes) != 1 {
		t.Errorf("changes = %v, want a single notification", f.changes)
	}
}

func TestTiesResolveIndependentOfDirection(t *testing.T) {
	f := newFixture(t)
	// Overlap People and Nature so 500 is in both intervals.
	f.regions["nature"].geom = Geometry{Left: 450, Width: 450}

	f.scroll(500) // forward
	forward := f.active()

	f.scroll(900)
	f.scroll(500) // backward
	backward := f.active()

	if forward != backward || forward != "people" {
		t.Errorf("forward = %q, backward = %q; want people for both", forward, backward)
	}
}

func TestSearchModeWins(t *testing.T) {
	f := newFixture(t)
	f.modes.active = true

	for _, x := range []int{0, 320, 700} {
		f.scroll(x)
		if got := f.active(); got != categories.SearchID {
			t.Errorf("active at %d in search mode = %q, want search", x, got)
		}
	}
}

func TestScrollTarget(t *testing.T) {
	first := &categories.Category{ID: "recent", First: true}
	other := &categories.Category{ID: "people"}

	for _, g := range []Geometry{{Left: 0}, {Left: 300, Width: 10}, {Left: 7}} {
		if got := ScrollTarget(first, g); got != 0 {
			t.Errorf("ScrollTarget(first, %+v) = %d, want 0", g, got)
		}
		if got := ScrollTarget(other, g); got != g.Left+1 {
			t.Errorf("ScrollTarget(other, %+v) = %d, want %d", g, got, g.Left+1)
		}
	}
}

func TestJumpTo(t *testing.T) {
	f := newFixture(t)

	f.nav.JumpTo(f.set.All[3]) // Nature
	if got := f.vp.assigned; len(got) != 1 || got[0] != 601 {
		t.Fatalf("assigned = %v, want [601]", got)
	}
	f.sched.Settle(10)
	if got := f.active(); got != "nature" {
		t.Errorf("active = %q, want nature", got)
	}

	f.nav.JumpTo(f.set.All[1]) // Recent is First
	if got := f.vp.assigned[len(f.vp.assigned)-1]; got != 0 {
		t.Errorf("jump to first category assigned %d, want 0", got)
	}
}

func TestJumpToFromSearch(t *testing.T) {
	f := newFixture(t)
	f.modes.active = true

	f.nav.JumpTo(f.set.All[3])
	if f.modes.exits != 1 {
		t.Fatalf("ExitSearch called %d times, want 1", f.modes.exits)
	}
	if len(f.vp.assigned) != 0 {
		t.Fatalf("assigned before refresh: %v", f.vp.assigned)
	}

	f.sched.Frame()
	if got := f.vp.assigned; len(got) != 1 || got[0] != 601 {
		t.Fatalf("assigned after refresh = %v, want [601]", got)
	}
	if f.regions["nature"].measured < 2 {
		t.Error("geometry should be re-measured after leaving search")
	}
}

func TestJumpToUnmounted(t *testing.T) {
	f := newFixture(t)
	f.nav.Detach(3)

	f.nav.JumpTo(f.set.All[3])
	if len(f.vp.assigned) != 0 {
		t.Errorf("jump to unmounted category assigned %v", f.vp.assigned)
	}
}

func TestEmptyList(t *testing.T) {
	set := categories.Assemble(categories.Options{Exclude: []string{categories.SearchID, categories.RecentID}})
	s := sched.NewManual()
	n := New(set, &fakeViewport{client: 80}, s, nil)
	n.OnScroll(0)
	s.Settle(10)

	if n.State().ActiveID != "" || n.Active() != nil {
		t.Errorf("active on empty list = %q, want none", n.State().ActiveID)
	}
}

func TestUnmountedPaintIgnored(t *testing.T) {
	f := newFixture(t)
	f.nav.OnScroll(320)
	f.nav.Unmount()
	f.sched.Settle(10)

	if got := f.active(); got != "" {
		t.Errorf("active after unmount = %q, want unchanged", got)
	}
}
