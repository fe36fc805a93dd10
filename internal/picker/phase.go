package picker

import (
	"time"

	"github.com/connorleisz/emojiTUI/internal/categories"
	"github.com/connorleisz/emojiTUI/internal/logging"
)

// Phase of the lazy first paint
type Phase int

const (
	// FirstRender exposes only the leading categories
	FirstRender Phase = iota
	// Full exposes every category for the rest of the controller's life
	Full
)

const (
	FirstRenderCount = 3
	FirstRenderDelay = 60 * time.Millisecond
)

func (p Phase) String() string {
	if p == Full {
		return "full"
	}
	return "first-render"
}

// Phase returns the current render phase
func (c *Controller) Phase() Phase {
	return c.phase
}

// Exposed returns the categories handed to the rendering layer
func (c *Controller) Exposed() []*categories.Category {
	if c.phase == FirstRender && len(c.set.All) > FirstRenderCount {
		return c.set.All[:FirstRenderCount]
	}
	return c.set.All
}

func (c *Controller) startFirstRender() {
	c.phase = FirstRender
	c.nav.SetFirstRender(true)
	c.expose()
	c.cancelFirstRender = c.sched.After(FirstRenderDelay, c.finishFirstRender)
}

func (c *Controller) finishFirstRender() {
	c.cancelFirstRender = nil
	if !c.mounted || c.phase == Full {
		return
	}
	c.phase = Full
	c.nav.SetFirstRender(false)
	logging.Logger().Info("render phase changed", "phase", c.phase.String(), "categories", len(c.set.All))
	c.expose()
}

// expose hands the current category window to the renderer and brings
// geometry and the active category up to date.
func (c *Controller) expose() {
	if c.deps.Renderer != nil {
		c.deps.Renderer.Expose(c.Exposed())
	}
	c.Relayout()
}
