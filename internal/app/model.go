package app

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/connorleisz/emojiTUI/internal/clipboard"
	"github.com/connorleisz/emojiTUI/internal/config"
	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/connorleisz/emojiTUI/internal/logging"
	"github.com/connorleisz/emojiTUI/internal/picker"
	"github.com/connorleisz/emojiTUI/internal/sched"
	"github.com/connorleisz/emojiTUI/internal/search"
	"github.com/fsnotify/fsnotify"
)

// Options configure the picker program
type Options struct {
	Config     *config.Config
	ConfigPath string
	Data       *emoji.Data
	Store      picker.Preferences
	Tracker    picker.Tracker

	// Multi keeps the picker open after a selection
	Multi bool
	// Dark selects the dark help theme
	Dark bool
	// Copy receives every selection; defaults to the system clipboard
	Copy func(emoji.Emoji) error
	// Watch enables reloading ConfigPath when it changes
	Watch bool
}

// NewModel creates and mounts a picker
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.CopyEmoji
	}

	sess := &session{}
	s := sched.NewTea()
	st := newStrip(cfg.PerLine, cfg.EmojiSize, cfg.Native)
	st.notFoundEmoji = cfg.NotFoundEmoji
	ab := &anchorBar{native: cfg.Native}
	sb := newSearchBox()
	pv := &previewBar{
		title:     cfg.Title,
		idle:      cfg.Emoji,
		native:    cfg.Native,
		showInfo:  cfg.ShowPreview,
		showSkins: cfg.ShowSkinTones,
	}

	var recent []string
	if len(cfg.Recent) > 0 {
		recent = cfg.Recent
	}
	copyFn := opts.Copy
	popts := picker.Options{
		Include:       cfg.Include,
		Exclude:       cfg.Exclude,
		Custom:        cfg.Records(),
		Filter:        cfg.Filter(),
		Skin:          cfg.Skin,
		DefaultSkin:   cfg.DefaultSkin,
		Recent:        recent,
		ShowPreview:   cfg.ShowPreview,
		ShowSkinTones: cfg.ShowSkinTones,
		PerLine:       cfg.PerLine,
		OnSelect: func(e emoji.Emoji) {
			sess.pick(e, copyFn)
		},
		OnSkinChange: func(tone int) {
			logging.Logger().Debug("skin tone changed", "skin", tone)
		},
	}
	deps := picker.Deps{
		Data:      opts.Data,
		Scheduler: s,
		Viewport:  st,
		Store:     opts.Store,
		Tracker:   opts.Tracker,
		Renderer:  st,
		Search:    sb,
		Anchors:   ab,
	}
	if cfg.ShowPreview {
		deps.Preview = pv
	}

	ctl := picker.New(popts, deps)
	st.ctl = ctl
	ab.set = ctl.Categories()

	index := search.New(opts.Data, search.Options{
		Include: cfg.Include,
		Exclude: cfg.Exclude,
		Filter:  cfg.Filter(),
		Custom:  popts.Custom,
		Loose:   cfg.LooseSearch,
	})

	if cfg.AutoFocus && !ctl.Categories().HideSearch {
		sb.input.Focus()
	}

	var watcher *fsnotify.Watcher
	if opts.Watch && opts.ConfigPath != "" {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			logging.Logger().Warn("watching config", "error", err)
		} else if err := w.Add(filepath.Dir(opts.ConfigPath)); err != nil {
			logging.Logger().Warn("watching config", "path", opts.ConfigPath, "error", err)
			w.Close()
		} else {
			watcher = w
		}
	}

	ctl.Mount()

	return Model{
		opts:    opts,
		cfg:     cfg,
		ctl:     ctl,
		sched:   s,
		index:   index,
		strip:   st,
		anchors: ab,
		search:  sb,
		preview: pv,
		keys:    defaultKeyMap(),
		help:    help.New(),
		cursor:  noCell,
		watcher: watcher,
		sess:    sess,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.sched.Cmd(), m.waitForConfigEvent()}
	if m.search.input.Focused() {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// waitForConfigEvent returns a command that waits for the next write to
// the config file
func (m Model) waitForConfigEvent() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	name := filepath.Clean(m.opts.ConfigPath)
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != name || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				return ConfigChangedMsg{}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return ConfigWatchErrorMsg{Err: err}
			}
		}
	}
}

// reloadConfig re-reads the config file and re-seeds the skin tone
func (m *Model) reloadConfig() {
	cfg, err := config.Load(m.opts.ConfigPath)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logging.Logger().Warn("reloading config", "path", m.opts.ConfigPath, "error", err)
		m.sess.setStatus("Config error: "+err.Error(), true)
		return
	}
	m.cfg.Skin = cfg.Skin
	m.cfg.DefaultSkin = cfg.DefaultSkin
	m.ctl.SetSkinProps(cfg.Skin, cfg.DefaultSkin)
	logging.Logger().Info("config reloaded", "path", m.opts.ConfigPath, "skin", m.ctl.Skin())
	m.sess.setStatus("Config reloaded", false)
}

// Picked returns every emoji selected so far
func (m Model) Picked() []emoji.Emoji {
	return m.sess.picked
}

// Controller exposes the picker controller
func (m Model) Controller() *picker.Controller {
	return m.ctl
}

// Close releases the config watcher and unmounts the picker
func (m Model) Close() {
	m.ctl.Unmount()
	if m.watcher != nil {
		m.watcher.Close()
	}
}

// screen returns where each band of the picker starts
func (m Model) screen() screenRows {
	r := screenRows{anchor: 0, search: -1, preview: -1}
	y := 1
	if !m.ctl.Categories().HideSearch {
		r.search = y
		y++
	}
	r.strip = y
	y += m.strip.rows + 1
	if m.cfg.ShowPreview || m.cfg.ShowSkinTones {
		r.preview = y
		y += 2
	}
	r.footer = y
	return r
}
