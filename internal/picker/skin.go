package picker

import (
	"strconv"

	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/connorleisz/emojiTUI/internal/logging"
)

// SkinKey is the preference key holding the chosen skin tone
const SkinKey = "skin"

// Skin returns the active skin tone
func (c *Controller) Skin() int {
	return c.sel.Skin
}

// seedSkin picks explicit option, then persisted value, then default
func (c *Controller) seedSkin() int {
	if emoji.ValidSkin(c.opts.Skin) {
		return c.opts.Skin
	}
	if stored, ok := c.storedSkin(); ok {
		return stored
	}
	if emoji.ValidSkin(c.opts.DefaultSkin) {
		return c.opts.DefaultSkin
	}
	return emoji.MinSkin
}

func (c *Controller) storedSkin() (int, bool) {
	if c.deps.Store == nil {
		return 0, false
	}
	v, ok := c.deps.Store.Get(SkinKey)
	if !ok {
		return 0, false
	}
	tone, err := strconv.Atoi(v)
	if err != nil || !emoji.ValidSkin(tone) {
		return 0, false
	}
	return tone, true
}

// SetSkinProps applies new host-supplied skin settings. An explicit skin
// always wins; a default applies only when nothing is persisted.
func (c *Controller) SetSkinProps(skin, defaultSkin int) {
	c.opts.Skin = skin
	c.opts.DefaultSkin = defaultSkin

	if emoji.ValidSkin(skin) {
		c.sel.Skin = skin
		return
	}
	if _, ok := c.storedSkin(); !ok && emoji.ValidSkin(defaultSkin) {
		c.sel.Skin = defaultSkin
	}
}

// SkinChange records a user-chosen tone and notifies the host
func (c *Controller) SkinChange(tone int) {
	if !emoji.ValidSkin(tone) {
		return
	}
	c.sel.Skin = tone
	if c.deps.Store != nil {
		if err := c.deps.Store.Update(map[string]string{SkinKey: strconv.Itoa(tone)}); err != nil {
			logging.Logger().Warn("persisting skin tone", "skin", tone, "error", err)
		}
	}
	if c.opts.OnSkinChange != nil {
		c.opts.OnSkinChange(tone)
	}
}
