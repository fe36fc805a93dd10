package nav

import (
	"sort"

	"github.com/connorleisz/emojiTUI/internal/categories"
	"github.com/connorleisz/emojiTUI/internal/logging"
	"github.com/connorleisz/emojiTUI/internal/sched"
)

// Geometry is a mounted category's memoized layout, in strip cells
type Geometry struct {
	Left      int
	Width     int
	MaxMargin int
}

// Contains reports whether offset falls in the category's interval. The
// interval excludes its left edge, which is why jump targets add one.
func Contains(g Geometry, offset int) bool {
	return g.Width > 0 && offset > g.Left && offset <= g.Left+g.Width
}

// Visibility of a mounted category
type Visibility int

const (
	Shown Visibility = iota
	Hidden
)

// Region is the narrow capability a mounted category exposes to the
// navigator. The rendering layer owns its lifecycle.
type Region interface {
	// Measure memoizes the category's current layout
	Measure()
	// Refresh re-reads the category's content without measuring
	Refresh()
	// Geometry returns the last memoized layout
	Geometry() Geometry
	// Contains reports whether offset falls inside the memoized interval
	Contains(offset int) bool
	SetVisibility(v Visibility)
}

// Viewport is the horizontally scrolling container. SetScrollOffset must
// not call back into the navigator.
type Viewport interface {
	ScrollOffset() int
	SetScrollOffset(x int)
	ClientWidth() int
	ScrollWidth() int
}

// Modes lets the navigator query and leave search mode
type Modes interface {
	SearchActive() bool
	ExitSearch()
}

// Direction of the last scroll, relative to the previous resolution
type Direction int

const (
	Still Direction = iota
	Forward
	Backward
)

// State is the navigation state owned by the navigator
type State struct {
	ScrollOffset int
	Direction    Direction
	ActiveID     string
	FirstRender  bool
}

// Navigator tracks which category is under the scroll offset and computes
// anchor jump targets.
type Navigator struct {
	set      *categories.Set
	vp       Viewport
	sched    sched.Scheduler
	modes    Modes
	onChange func(*categories.Category)

	regions map[int]Region
	state   State
	offset  int

	clientWidth int
	scrollWidth int

	waitingForPaint bool
	needsMeasure    bool
	mounted         bool
}

// New creates a navigator over the assembled categories. onChange is
// called whenever the active category changes; it may be nil.
func New(set *categories.Set, vp Viewport, s sched.Scheduler, onChange func(*categories.Category)) *Navigator {
	return &Navigator{
		set:      set,
		vp:       vp,
		sched:    s,
		onChange: onChange,
		regions:  make(map[int]Region),
		mounted:  true,
	}
}

// SetModes wires the mode coordinator
func (n *Navigator) SetModes(m Modes) {
	n.modes = m
}

// Attach registers the region rendered for category index i
func (n *Navigator) Attach(i int, r Region) {
	n.regions[i] = r
}

// Detach forgets the region for category index i
func (n *Navigator) Detach(i int) {
	delete(n.regions, i)
}

// Region returns the region mounted for index i
func (n *Navigator) Region(i int) (Region, bool) {
	r, ok := n.regions[i]
	return r, ok
}

// Regions returns mounted indices in ascending order
func (n *Navigator) Regions() []int {
	idx := make([]int, 0, len(n.regions))
	for i := range n.regions {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Unmount stops pending refresh callbacks from touching state
func (n *Navigator) Unmount() {
	n.mounted = false
}

// State returns a snapshot of the navigation state
func (n *Navigator) State() State {
	return n.state
}

// SetFirstRender records the render phase
func (n *Navigator) SetFirstRender(v bool) {
	n.state.FirstRender = v
}

// Active returns the active category, or nil when none is resolved
func (n *Navigator) Active() *categories.Category {
	if i := n.set.Index(n.state.ActiveID); i >= 0 {
		return n.set.All[i]
	}
	return nil
}

// OnScroll records a new offset. Bursts are coalesced into one resolution
// per refresh.
func (n *Navigator) OnScroll(offset int) {
	n.offset = offset
	n.RequestResolve()
}

// RequestResolve schedules a resolution for the next refresh unless one is
// already pending.
func (n *Navigator) RequestResolve() {
	if n.waitingForPaint {
		return
	}
	n.waitingForPaint = true
	n.sched.RequestFrame(n.paint)
}

// Invalidate marks every mounted geometry stale. The next refresh
// re-measures before resolving.
func (n *Navigator) Invalidate() {
	n.needsMeasure = true
	n.RequestResolve()
}

func (n *Navigator) paint() {
	n.waitingForPaint = false
	if !n.mounted {
		return
	}
	if n.needsMeasure {
		n.MeasureAll()
	}
	n.Resolve()
}

// MeasureAll re-memoizes every mounted region and the viewport extents
func (n *Navigator) MeasureAll() {
	n.needsMeasure = false
	for _, i := range n.Regions() {
		n.regions[i].Measure()
	}
	n.clientWidth = n.vp.ClientWidth()
	n.scrollWidth = n.vp.ScrollWidth()
}

// Resolve determines the active category for the recorded offset now
func (n *Navigator) Resolve() {
	all := n.set.All
	offset := n.offset

	dir := Still
	switch {
	case offset > n.state.ScrollOffset:
		dir = Forward
	case offset < n.state.ScrollOffset:
		dir = Backward
	}

	var active *categories.Category
	if n.modes != nil && n.modes.SearchActive() && n.set.Index(categories.SearchID) >= 0 {
		active = n.set.Search
	} else {
		minLeft := 0
		found := -1
		count := len(all)
		for i := 0; i < count; i++ {
			// Scan from the end when moving forward; the lowest matching
			// index wins either way.
			ii := i
			if dir == Forward {
				ii = count - 1 - i
			}
			r, ok := n.regions[ii]
			if !ok {
				continue
			}
			if left := r.Geometry().Left; left > 0 && (minLeft == 0 || left < minLeft) {
				minLeft = left
			}
			if r.Contains(offset) && (found < 0 || ii < found) {
				found = ii
			}
		}
		if found >= 0 {
			active = all[found]
		}

		if offset < minLeft {
			active = n.set.FirstAnchor()
		} else if count > 0 && offset+n.clientWidth >= n.scrollWidth {
			active = all[count-1]
		}
	}

	n.state.ScrollOffset = offset
	n.state.Direction = dir

	if active == nil {
		if len(all) == 0 {
			n.setActive(nil)
			return
		}
		if n.Active() != nil {
			return
		}
		active = n.set.FirstAnchor()
		if active == nil {
			active = all[0]
		}
	}
	n.setActive(active)
}

func (n *Navigator) setActive(c *categories.Category) {
	id := ""
	if c != nil {
		id = c.ID
	}
	if id == n.state.ActiveID {
		return
	}
	n.state.ActiveID = id
	logging.Logger().Debug("active category changed", "category", id, "offset", n.state.ScrollOffset)
	if n.onChange != nil {
		n.onChange(c)
	}
}

// ScrollTarget returns the offset that brings c into view
func ScrollTarget(c *categories.Category, g Geometry) int {
	if c.First {
		return 0
	}
	return g.Left + 1
}

// ScrollTo assigns the viewport offset and records the resulting position
func (n *Navigator) ScrollTo(x int) {
	n.vp.SetScrollOffset(x)
	n.OnScroll(n.vp.ScrollOffset())
}

// JumpTo scrolls to category c. In search mode the search is cleared first
// and the assignment waits one refresh for the categories to reappear.
// Categories without a mounted region are skipped silently.
func (n *Navigator) JumpTo(c *categories.Category) {
	idx := n.set.Index(c.ID)
	scroll := func() {
		if !n.mounted || idx < 0 {
			return
		}
		r, ok := n.regions[idx]
		if !ok {
			return
		}
		n.ScrollTo(ScrollTarget(c, r.Geometry()))
	}

	if n.modes != nil && n.modes.SearchActive() {
		n.modes.ExitSearch()
		n.sched.RequestFrame(scroll)
		return
	}
	scroll()
}
