package terminal

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// Capabilities holds detected terminal capabilities
type Capabilities struct {
	Profile        termenv.Profile
	// NativeEmoji reports whether the terminal is expected to draw emoji
	// glyphs at double width.
	NativeEmoji    bool
	DarkBackground bool
}

// TrueColor reports whether 24-bit color is available
func (c Capabilities) TrueColor() bool {
	return c.Profile == termenv.TrueColor
}

// Detect probes the terminal behind out
func Detect(out io.Writer) Capabilities {
	o := termenv.NewOutput(out)
	return Capabilities{
		Profile:        o.EnvColorProfile(),
		NativeEmoji:    nativeEmoji(),
		DarkBackground: o.HasDarkBackground(),
	}
}

// nativeEmoji checks for terminals known to mangle color emoji
func nativeEmoji() bool {
	if os.Getenv("EMOJITUI_NO_NATIVE") != "" {
		return false
	}

	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case term == "linux", term == "dumb", strings.HasPrefix(term, "vt"):
		return false
	}

	// Plain xterm only draws emoji under a UTF-8 locale
	if strings.HasPrefix(term, "xterm") && os.Getenv("TERM_PROGRAM") == "" {
		lang := os.Getenv("LC_ALL") + os.Getenv("LC_CTYPE") + os.Getenv("LANG")
		return strings.Contains(strings.ToUpper(lang), "UTF-8") || strings.Contains(strings.ToUpper(lang), "UTF8")
	}
	return true
}

// ProfileName returns a human-readable name for the color profile
func (c Capabilities) ProfileName() string {
	switch c.Profile {
	case termenv.TrueColor:
		return "TrueColor"
	case termenv.ANSI256:
		return "ANSI256"
	case termenv.ANSI:
		return "ANSI"
	default:
		return "Ascii"
	}
}
