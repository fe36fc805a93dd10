package picker

import (
	"github.com/connorleisz/emojiTUI/internal/categories"
	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/connorleisz/emojiTUI/internal/logging"
	"github.com/connorleisz/emojiTUI/internal/nav"
)

// SearchActive reports whether search results are showing
func (c *Controller) SearchActive() bool {
	return c.set.Search.Emojis != nil
}

// SearchResults returns the current results, nil in browse mode
func (c *Controller) SearchResults() []string {
	return c.set.Search.Emojis
}

// HandleSearch receives results from the search collaborator. nil means no
// active query.
func (c *Controller) HandleSearch(results []string) {
	if results == nil {
		c.leaveSearch()
		return
	}
	c.EnterSearch(results)
}

// EnterSearch overlays results on the strip and hides every other category
func (c *Controller) EnterSearch(results []string) {
	if c.set.HideSearch {
		return
	}
	if results == nil {
		results = []string{}
	}
	c.set.Search.Emojis = results
	logging.Logger().Debug("search entered", "results", len(results))
	c.applyVisibility()
	c.nav.ScrollTo(0)
	c.nav.Invalidate()
}

// ExitSearch drops the results, clears the search box and restores the
// categories.
func (c *Controller) ExitSearch() {
	c.leaveSearch()
	if c.deps.Search != nil {
		c.deps.Search.Clear()
	}
}

func (c *Controller) leaveSearch() {
	if c.set.Search.Emojis == nil {
		return
	}
	c.set.Search.Emojis = nil
	logging.Logger().Debug("search exited")
	c.applyVisibility()
	c.nav.ScrollTo(0)
	c.nav.Invalidate()
}

func (c *Controller) applyVisibility() {
	v := nav.Shown
	if c.SearchActive() {
		v = nav.Hidden
	}
	searchIdx := c.set.Index(categories.SearchID)
	for _, i := range c.nav.Regions() {
		if i == searchIdx {
			continue
		}
		r, _ := c.nav.Region(i)
		r.SetVisibility(v)
	}
}

// EmojiClick handles a pointer activation
func (c *Controller) EmojiClick(e emoji.Emoji) {
	if c.opts.OnClick != nil {
		c.opts.OnClick(e)
	}
	c.Select(e)
}

// Select forwards the emoji to the host and records it as recently used
func (c *Controller) Select(e emoji.Emoji) {
	if c.opts.OnSelect != nil {
		c.opts.OnSelect(e)
	}
	if !c.set.HideRecent && c.opts.Recent == nil && c.deps.Tracker != nil {
		if err := c.deps.Tracker.Add(e.ID); err != nil {
			logging.Logger().Warn("recording recent emoji", "id", e.ID, "error", err)
		}
	}

	r, ok := c.nav.Region(c.set.Index(categories.RecentID))
	if !ok {
		return
	}
	before := c.remeasureNow(r)
	c.scheduleRemeasureNextRefresh(r, before)
}

// remeasureNow re-renders the Recent category immediately and returns the
// geometry it had before.
func (c *Controller) remeasureNow(r nav.Region) nav.Geometry {
	g := r.Geometry()
	r.Refresh()
	return g
}

// scheduleRemeasureNextRefresh measures Recent once layout has settled. An
// unchanged width and margin mean nothing else moved.
func (c *Controller) scheduleRemeasureNextRefresh(r nav.Region, before nav.Geometry) {
	c.sched.RequestFrame(func() {
		if !c.mounted {
			return
		}
		r.Measure()
		if g := r.Geometry(); g.Width == before.Width && g.MaxMargin == before.MaxMargin {
			return
		}
		c.nav.MeasureAll()
		c.nav.Resolve()
		if c.SearchActive() {
			r.SetVisibility(nav.Hidden)
		}
	})
}

// ConfirmTopResult selects the first search result with the current skin.
// It reports whether the key was consumed.
func (c *Controller) ConfirmTopResult() bool {
	results := c.set.Search.Emojis
	if len(results) == 0 || c.deps.Data == nil {
		return c.SearchActive()
	}
	e, err := c.deps.Data.Sanitize(results[0], c.sel.Skin, c.set.CustomEmojis)
	if err != nil {
		logging.Logger().Warn("top search result", "id", results[0], "error", err)
		return true
	}
	c.Select(e)
	return true
}
