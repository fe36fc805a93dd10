package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
	"github.com/connorleisz/emojiTUI/internal/emoji"
)

// ErrUnavailable indicates no clipboard utility was found
var ErrUnavailable = errors.New("clipboard unavailable - install xclip, xsel, or wl-clipboard")

// ErrNothingToCopy is returned for emojis with neither a glyph nor an id
var ErrNothingToCopy = errors.New("emoji has no text to copy")

// write is swapped in tests
var write = clipboard.WriteAll

// IsAvailable returns true if clipboard operations are supported
func IsAvailable() bool {
	return !clipboard.Unsupported
}

// Text returns what copying e puts on the clipboard: the native glyph, or
// the colons form for emojis without one (custom image emojis).
func Text(e emoji.Emoji) string {
	if e.Native != "" {
		return e.Native
	}
	return e.Colons
}

// CopyEmoji copies the emoji's text to the clipboard
func CopyEmoji(e emoji.Emoji) error {
	text := Text(e)
	if text == "" {
		return ErrNothingToCopy
	}
	return CopyRaw(text)
}

// CopyRaw copies text to the clipboard, stripping any ANSI styling
func CopyRaw(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return write(ansi.Strip(text))
}

// CopyAll copies several emojis, joined without separators
func CopyAll(list []emoji.Emoji) error {
	var b strings.Builder
	for _, e := range list {
		b.WriteString(Text(e))
	}
	if b.Len() == 0 {
		return ErrNothingToCopy
	}
	return CopyRaw(b.String())
}
