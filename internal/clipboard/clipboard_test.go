package clipboard

import (
	"errors"
	"testing"

	"github.com/atotto/clipboard"
	"github.com/connorleisz/emojiTUI/internal/emoji"
)

func capture(t *testing.T) *string {
	t.Helper()
	var got string
	prev := write
	write = func(s string) error {
		got = s
		return nil
	}
	t.Cleanup(func() { write = prev })
	return &got
}

func TestText(t *testing.T) {
	if got := Text(emoji.Emoji{Record: emoji.Record{Native: "🐶"}, Colons: ":dog:"}); got != "🐶" {
		t.Errorf("Text() = %q, want native glyph", got)
	}
	if got := Text(emoji.Emoji{Colons: ":octocat:"}); got != ":octocat:" {
		t.Errorf("Text() = %q, want colons fallback", got)
	}
}

func TestCopyEmoji(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard utility")
	}
	got := capture(t)
	if err := CopyEmoji(emoji.Emoji{Record: emoji.Record{Native: "🍕"}}); err != nil {
		t.Fatalf("CopyEmoji() error: %v", err)
	}
	if *got != "🍕" {
		t.Errorf("copied %q, want 🍕", *got)
	}
}

func TestCopyEmpty(t *testing.T) {
	if err := CopyEmoji(emoji.Emoji{}); !errors.Is(err, ErrNothingToCopy) {
		t.Errorf("CopyEmoji(empty) error = %v, want ErrNothingToCopy", err)
	}
	if err := CopyAll(nil); !errors.Is(err, ErrNothingToCopy) {
		t.Errorf("CopyAll(nil) error = %v, want ErrNothingToCopy", err)
	}
}

func TestCopyStripsStyling(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard utility")
	}
	got := capture(t)
	if err := CopyRaw("\x1b[1m🐶\x1b[0m"); err != nil {
		t.Fatalf("CopyRaw() error: %v", err)
	}
	if *got != "🐶" {
		t.Errorf("copied %q, want styling stripped", *got)
	}

	if err := CopyAll([]emoji.Emoji{{Record: emoji.Record{Native: "🐶"}}, {Colons: ":octocat:"}}); err != nil {
		t.Fatalf("CopyAll() error: %v", err)
	}
	if *got != "🐶:octocat:" {
		t.Errorf("CopyAll copied %q", *got)
	}
}
