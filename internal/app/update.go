package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/connorleisz/emojiTUI/internal/categories"
	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/connorleisz/emojiTUI/internal/logging"
)

const (
	statusDuration = 2 * time.Second
	configDebounce = 100 * time.Millisecond
	// wheelColumns is how many emoji columns one wheel notch scrolls
	wheelColumns = 3
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Frame and timer messages drive the controller
	if m.sched.Handle(msg) {
		return m, m.sched.Cmd()
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.strip.width = msg.Width
		m.strip.layout()
		m.ready = true
		m.ctl.Relayout()

	case ClearStatusMsg:
		if time.Since(m.sess.statusMessageTime) >= statusDuration-10*time.Millisecond {
			m.sess.statusMessage = ""
		}

	case ConfigChangedMsg:
		cmd = tea.Batch(ScheduleConfigReload(configDebounce), m.waitForConfigEvent())

	case DebouncedConfigMsg:
		m.reloadConfig()

	case ConfigWatchErrorMsg:
		logging.Logger().Warn("config watcher", "error", msg.Err)
		cmd = m.waitForConfigEvent()

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m = m.handleMouse(msg)
	}

	return m, m.finish(cmd)
}

// finish gathers the scheduler ticks and session follow-ups of an update
func (m Model) finish(cmd tea.Cmd) tea.Cmd {
	cmds := []tea.Cmd{cmd, m.sched.Cmd()}
	if m.sess.statusChanged {
		m.sess.statusChanged = false
		cmds = append(cmds, ClearStatusAfter(statusDuration))
	}
	if m.sess.done && !m.opts.Multi {
		cmds = append(cmds, tea.Quit)
	}
	m.sess.done = false
	return tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.overlay != OverlayNone {
		switch msg.String() {
		case "esc", "q", "?", "i", "enter":
			m.overlay = OverlayNone
		}
		return m, nil
	}

	if m.search.input.Focused() {
		switch {
		case key.Matches(msg, m.keys.Clear):
			if m.ctl.SearchActive() {
				m.ctl.ExitSearch()
				m.strip.reflow()
			} else {
				m.search.input.Blur()
			}
			return m, nil
		case key.Matches(msg, m.keys.Select):
			m.ctl.ConfirmTopResult()
			return m, nil
		case msg.String() == "down":
			m.search.input.Blur()
			return m, nil
		case key.Matches(msg, m.keys.NextCat), key.Matches(msg, m.keys.PrevCat):
			m.search.input.Blur()
		default:
			before := m.search.input.Value()
			var cmd tea.Cmd
			m.search.input, cmd = m.search.input.Update(msg)
			if q := m.search.input.Value(); q != before {
				m.runSearch(q)
			}
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.overlay = OverlayHelp
	case key.Matches(msg, m.keys.Inspect):
		m.overlay = OverlayInspect
	case key.Matches(msg, m.keys.Search):
		if m.ctl.Categories().HideSearch {
			return m, nil
		}
		m.search.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Clear):
		if m.ctl.SearchActive() {
			m.ctl.ExitSearch()
			m.strip.reflow()
		}
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.PageLeft):
		m.scrollBy(-m.strip.width)
	case key.Matches(msg, m.keys.PageRight):
		m.scrollBy(m.strip.width)
	case key.Matches(msg, m.keys.NextCat):
		m.jumpAnchor(1)
	case key.Matches(msg, m.keys.PrevCat):
		m.jumpAnchor(-1)
	case key.Matches(msg, m.keys.Select):
		if rec, ok := m.strip.record(m.cursor); ok {
			m.ctl.Select(emoji.WithSkin(rec, m.ctl.Skin()))
		} else {
			m.ctl.ConfirmTopResult()
		}
	case key.Matches(msg, m.keys.Skin):
		m.ctl.SkinChange(int(msg.String()[0] - '0'))
	}
	return m, nil
}

// runSearch hands the results for q to the controller
func (m *Model) runSearch(q string) {
	results := m.index.Search(q, m.cfg.MaxResults)
	m.ctl.HandleSearch(results)
	m.strip.reflow()
	m.setCursor(noCell)
}

// scrollBy moves the strip the way a user scroll would
func (m *Model) scrollBy(dx int) {
	m.strip.SetScrollOffset(m.strip.ScrollOffset() + dx)
	m.ctl.OnScroll(m.strip.ScrollOffset())
}

// setCursor moves the highlighted cell and updates the preview
func (m *Model) setCursor(c cell) {
	had := m.cursor != noCell
	m.cursor = c
	m.strip.hover = c
	if rec, ok := m.strip.record(c); ok {
		m.ctl.HoverEnter(rec)
		return
	}
	if had {
		m.ctl.HoverLeave()
	}
}

// moveCursor steps the keyboard cursor by columns or rows, crossing into
// neighboring categories at the edges.
func (m *Model) moveCursor(dCol, dRow int) {
	views := m.strip.visible()
	if len(views) == 0 {
		return
	}

	cur := -1
	for i, v := range views {
		if v.index == m.cursor.cat {
			cur = i
		}
	}
	if cur < 0 || m.cursor.pos >= len(views[cur].items) {
		start := views[0]
		if active := m.ctl.Active(); active != nil {
			for _, v := range views {
				if v.cat == active {
					start = v
				}
			}
		}
		m.setCursor(cell{cat: start.index, pos: 0})
		m.reveal()
		return
	}

	rows := m.strip.rows
	v := views[cur]
	col, row := m.cursor.pos/rows, m.cursor.pos%rows
	row = clamp(row+dRow, 0, rows-1)
	col += dCol

	switch {
	case col < 0 && cur > 0:
		v = views[cur-1]
		col = v.columns() - 1
	case col >= v.columns() && cur < len(views)-1:
		v = views[cur+1]
		col = 0
	}
	col = clamp(col, 0, v.columns()-1)
	pos := clamp(col*rows+row, 0, len(v.items)-1)

	m.setCursor(cell{cat: v.index, pos: pos})
	m.reveal()
}

func (m *Model) reveal() {
	if m.strip.reveal(m.cursor) {
		m.ctl.OnScroll(m.strip.ScrollOffset())
	}
}

// jumpAnchor jumps to the next or previous anchor-visible category
func (m *Model) jumpAnchor(dir int) {
	spans := m.anchors.spans()
	if len(spans) == 0 {
		return
	}
	cur := -1
	if active := m.ctl.Active(); active != nil && active.ID != categories.SearchID {
		for i, s := range spans {
			if s.cat == active {
				cur = i
			}
		}
	}
	next := cur + dir
	if cur < 0 && dir < 0 {
		next = 0
	}
	next = clamp(next, 0, len(spans)-1)

	m.setCursor(noCell)
	m.ctl.AnchorClick(spans[next].cat)
	m.strip.reflow()
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	rows := m.screen()

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		m.scrollBy(-wheelColumns * m.strip.cellW)
		return m
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		m.scrollBy(wheelColumns * m.strip.cellW)
		return m
	}

	stripRow := msg.Y - rows.strip - 1
	inStrip := stripRow >= 0 && stripRow < m.strip.rows

	if msg.Action == tea.MouseActionMotion {
		c := noCell
		if inStrip {
			c, _ = m.strip.hit(msg.X, stripRow)
		}
		if c != m.cursor {
			m.setCursor(c)
		}
		return m
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m
	}

	switch {
	case msg.Y == rows.anchor:
		if cat := m.anchors.at(msg.X); cat != nil {
			m.setCursor(noCell)
			m.ctl.AnchorClick(cat)
			m.strip.reflow()
		}
	case msg.Y == rows.search:
		m.search.input.Focus()
	case inStrip:
		c, ok := m.strip.hit(msg.X, stripRow)
		if !ok {
			return m
		}
		rec, _ := m.strip.record(c)
		m.ctl.EmojiClick(emoji.WithSkin(rec, m.ctl.Skin()))
	case msg.Y == rows.preview:
		if tone := m.preview.swatchAt(msg.X, m.width); tone > 0 {
			m.ctl.SkinChange(tone)
		}
	}
	return m
}
