package picker

import (
	"github.com/connorleisz/emojiTUI/internal/categories"
	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/connorleisz/emojiTUI/internal/nav"
	"github.com/connorleisz/emojiTUI/internal/sched"
)

// Options are the host-facing settings of a picker
type Options struct {
	Include     []string
	Exclude     []string
	Custom      []emoji.Record
	Filter      func(emoji.Record) bool
	Skin        int
	DefaultSkin int

	// Recent overrides the frequency tracker when non-nil
	Recent []string

	ShowPreview   bool
	ShowSkinTones bool
	PerLine       int

	OnSelect     func(emoji.Emoji)
	OnClick      func(emoji.Emoji)
	OnSkinChange func(int)
}

// Preferences is the persisted key-value store
type Preferences interface {
	Get(key string) (string, bool)
	Update(values map[string]string) error
}

// Tracker ranks frequently used emojis
type Tracker interface {
	Add(id string) error
	Get(perLine int) []string
}

// SearchBox is the search input collaborator
type SearchBox interface {
	Clear()
}

// Anchors is the anchor bar collaborator
type Anchors interface {
	SetSelected(name string)
}

// Preview shows the hovered emoji; nil clears it
type Preview interface {
	SetEmoji(rec *emoji.Record)
}

// Renderer mounts the categories it is handed and attaches a region for
// each through Controller.Attach.
type Renderer interface {
	Expose(cats []*categories.Category)
}

// Deps are the collaborators a Controller drives. Search, Anchors and
// Preview may be nil when the host does not render them.
type Deps struct {
	Data      *emoji.Data
	Scheduler sched.Scheduler
	Viewport  nav.Viewport
	Store     Preferences
	Tracker   Tracker
	Renderer  Renderer
	Search    SearchBox
	Anchors   Anchors
	Preview   Preview
}

// Controller owns navigation and selection state for one mounted picker
type Controller struct {
	opts  Options
	deps  Deps
	set   *categories.Set
	nav   *nav.Navigator
	sched sched.Scheduler

	phase             Phase
	cancelFirstRender func()

	sel     Selection
	mounted bool
}

// New assembles categories and seeds the selection state. Call Mount
// before driving it.
func New(opts Options, deps Deps) *Controller {
	if opts.PerLine <= 0 {
		opts.PerLine = DefaultPerLine
	}

	var lookup func(string) (emoji.Record, bool)
	var base []emoji.CategoryData
	if deps.Data != nil {
		lookup = deps.Data.Lookup
		base = deps.Data.Categories
	}

	c := &Controller{
		opts:  opts,
		deps:  deps,
		sched: deps.Scheduler,
		set: categories.Assemble(categories.Options{
			Base:    base,
			Custom:  opts.Custom,
			Include: opts.Include,
			Exclude: opts.Exclude,
			Filter:  opts.Filter,
			Lookup:  lookup,
		}),
	}
	c.nav = nav.New(c.set, deps.Viewport, deps.Scheduler, c.activeChanged)
	c.nav.SetModes(c)
	c.sel.Skin = c.seedSkin()
	return c
}

// DefaultPerLine is the number of emoji rows when the host sets none
const DefaultPerLine = 4

// Mount starts the first-render phase
func (c *Controller) Mount() {
	c.mounted = true
	c.startFirstRender()
}

// Unmount cancels pending timers; late callbacks are ignored
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.set.Search.Emojis = nil
	if c.cancelFirstRender != nil {
		c.cancelFirstRender()
		c.cancelFirstRender = nil
	}
	c.cancelHoverClear()
	c.nav.Unmount()
}

// Mounted reports whether the controller is live
func (c *Controller) Mounted() bool {
	return c.mounted
}

// Attach registers the region rendered for category index i
func (c *Controller) Attach(i int, r nav.Region) {
	c.nav.Attach(i, r)
	if c.SearchActive() && i != c.set.Index(categories.SearchID) {
		r.SetVisibility(nav.Hidden)
	}
}

// Detach forgets the region for category index i
func (c *Controller) Detach(i int) {
	c.nav.Detach(i)
}

// Categories returns the full assembled list
func (c *Controller) Categories() *categories.Set {
	return c.set
}

// Navigator exposes the navigation state machine
func (c *Controller) Navigator() *nav.Navigator {
	return c.nav
}

// Options returns the options the controller was built with
func (c *Controller) Options() Options {
	return c.opts
}

// Data returns the dataset collaborator
func (c *Controller) Data() *emoji.Data {
	return c.deps.Data
}

// Active returns the active category
func (c *Controller) Active() *categories.Category {
	return c.nav.Active()
}

// OnScroll forwards a scroll event from the viewport
func (c *Controller) OnScroll(offset int) {
	c.nav.OnScroll(offset)
}

// AnchorClick jumps to the clicked category
func (c *Controller) AnchorClick(cat *categories.Category) {
	c.nav.JumpTo(cat)
}

// Relayout re-memoizes every mounted geometry and schedules a resolution.
// Hosts call it after any mutation that changes category sizes.
func (c *Controller) Relayout() {
	if !c.mounted {
		return
	}
	c.nav.MeasureAll()
	c.nav.RequestResolve()
}

// Resolve resolves an emoji id against the dataset and custom records
func (c *Controller) Resolve(id string) (emoji.Record, bool) {
	if rec, ok := c.set.CustomEmojis[id]; ok {
		return rec, true
	}
	if c.deps.Data == nil {
		return emoji.Record{}, false
	}
	return c.deps.Data.Lookup(id)
}

// RecentEmojis returns the refs shown in the Recent category
func (c *Controller) RecentEmojis() []string {
	if c.opts.Recent != nil {
		return c.opts.Recent
	}
	if c.deps.Tracker == nil {
		return nil
	}
	return c.deps.Tracker.Get(c.opts.PerLine)
}

func (c *Controller) activeChanged(cat *categories.Category) {
	if c.deps.Anchors == nil {
		return
	}
	name := ""
	if cat != nil {
		name = cat.Name
	}
	c.deps.Anchors.SetSelected(name)
}
