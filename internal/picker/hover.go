package picker

import (
	"time"

	"github.com/connorleisz/emojiTUI/internal/emoji"
)

// HoverClearDelay keeps the preview up while the pointer crosses the gap
// between adjacent cells.
const HoverClearDelay = 16 * time.Millisecond

// Selection is the per-mount selection state
type Selection struct {
	Skin    int
	Hovered *emoji.Record

	cancelClear func()
	clearToken  int
}

// Hovered returns the emoji currently shown in the preview
func (c *Controller) Hovered() *emoji.Record {
	return c.sel.Hovered
}

// HoverEnter publishes rec to the preview, cancelling any pending clear
func (c *Controller) HoverEnter(rec emoji.Record) {
	if c.deps.Preview == nil {
		return
	}
	c.cancelHoverClear()

	if custom, ok := c.set.CustomEmojis[rec.ID]; ok {
		rec = mergeCustom(rec, custom)
	}
	if c.sel.Hovered != nil && c.sel.Hovered.ID == rec.ID {
		return
	}
	c.sel.Hovered = &rec
	c.deps.Preview.SetEmoji(&rec)
}

// HoverLeave schedules the preview to clear
func (c *Controller) HoverLeave() {
	if c.deps.Preview == nil {
		return
	}
	c.cancelHoverClear()

	c.sel.clearToken++
	token := c.sel.clearToken
	c.sel.cancelClear = c.sched.After(HoverClearDelay, func() {
		if !c.mounted || token != c.sel.clearToken {
			return
		}
		c.sel.cancelClear = nil
		c.sel.Hovered = nil
		c.deps.Preview.SetEmoji(nil)
	})
}

func (c *Controller) cancelHoverClear() {
	if c.sel.cancelClear == nil {
		return
	}
	c.sel.cancelClear()
	c.sel.cancelClear = nil
	c.sel.clearToken++
}

// mergeCustom overlays the authoring fields a custom record carries
func mergeCustom(rec, custom emoji.Record) emoji.Record {
	rec.Custom = true
	if custom.Name != "" {
		rec.Name = custom.Name
	}
	if len(custom.ShortNames) > 0 {
		rec.ShortNames = custom.ShortNames
	}
	if len(custom.Keywords) > 0 {
		rec.Keywords = custom.Keywords
	}
	if len(custom.Emoticons) > 0 {
		rec.Emoticons = custom.Emoticons
	}
	if custom.Text != "" {
		rec.Text = custom.Text
	}
	if custom.ImageURL != "" {
		rec.ImageURL = custom.ImageURL
	}
	if custom.Native != "" {
		rec.Native = custom.Native
	}
	return rec
}
