package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
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

// Model is the main application model implementing tea.Model
type Model struct {
	opts Options
	cfg  *config.Config

	ctl   *picker.Controller
	sched *sched.Tea
	index *search.Index

	// Collaborators the controller calls back into
	strip   *strip
	anchors *anchorBar
	search  *searchBox
	preview *previewBar

	keys    keyMap
	help    help.Model
	overlay Overlay

	cursor cell
	width  int
	height int
	ready  bool

	// Config file watcher
	watcher *fsnotify.Watcher

	sess *session
}

// session collects what selection callbacks report back to Update
type session struct {
	picked []emoji.Emoji
	done   bool

	statusMessage     string
	statusMessageTime time.Time
	statusIsError     bool
	statusChanged     bool
}

func (s *session) setStatus(msg string, isErr bool) {
	s.statusMessage = msg
	s.statusMessageTime = time.Now()
	s.statusIsError = isErr
	s.statusChanged = true
}

// pick records a selection and copies it
func (s *session) pick(e emoji.Emoji, copyFn func(emoji.Emoji) error) {
	s.picked = append(s.picked, e)
	s.done = true
	if copyFn == nil {
		return
	}
	if err := copyFn(e); err != nil {
		logging.Logger().Warn("copying emoji", "id", e.ID, "error", err)
		s.setStatus("Copy failed: "+err.Error(), true)
		return
	}
	s.setStatus("Copied "+clipboard.Text(e), false)
}

// ClearStatusMsg is sent to clear the status message after delay
type ClearStatusMsg struct{}

// ClearStatusAfter returns a command that clears the status message after a delay
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// ConfigChangedMsg is sent when the config file is written
type ConfigChangedMsg struct{}

// DebouncedConfigMsg triggers the actual reload once writes settle
type DebouncedConfigMsg struct{}

// ConfigWatchErrorMsg carries a watcher failure
type ConfigWatchErrorMsg struct {
	Err error
}

// ScheduleConfigReload returns a command that fires after the debounce delay
func ScheduleConfigReload(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return DebouncedConfigMsg{}
	})
}

// screenRows are the first line of each band, -1 when absent
type screenRows struct {
	anchor  int
	search  int
	strip   int
	preview int
	footer  int
}
