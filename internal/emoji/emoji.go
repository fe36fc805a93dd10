package emoji

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//go:embed data/all.json
var dataFS embed.FS

// ErrUnknownEmoji is returned when an id resolves to no record.
var ErrUnknownEmoji = errors.New("unknown emoji")

// Skin tone modifiers, indexed by tone 2..6. Tone 1 is the default (no modifier).
var skinModifiers = [...]string{"", "", "1F3FB", "1F3FC", "1F3FD", "1F3FE", "1F3FF"}

const (
	MinSkin = 1
	MaxSkin = 6
)

// Record is a fully resolved emoji entry
type Record struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Unified    string   `json:"unified,omitempty"`
	ShortNames []string `json:"short_names"`
	Keywords   []string `json:"keywords,omitempty"`
	Emoticons  []string `json:"emoticons,omitempty"`
	Text       string   `json:"text,omitempty"`
	AddedIn    string   `json:"added_in,omitempty"`
	SkinTones  bool     `json:"has_skin_tones,omitempty"`
	Custom     bool     `json:"custom,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
	Native     string   `json:"native,omitempty"`

	// Search is the lowercased haystack used by the search index
	Search string `json:"-"`
}

// Emoji is a record prepared for a specific skin tone, as handed to hosts
type Emoji struct {
	Record
	Skin   int    `json:"skin,omitempty"`
	Colons string `json:"colons"`
}

// CategoryData is a category as shipped in the dataset
type CategoryData struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Emojis []string `json:"emojis"`
}

// Data is the shared emoji dataset
type Data struct {
	Compressed bool
	Categories []CategoryData
	Emojis     map[string]Record
	Aliases    map[string]string

	raw map[string]json.RawMessage
}

// compactRecord is the short-key form used by compressed datasets
type compactRecord struct {
	Name      string   `json:"a"`
	Unified   string   `json:"b"`
	Keywords  []string `json:"j"`
	Emoticons []string `json:"l"`
	Text      string   `json:"m"`
	Names     []string `json:"n"`
	AddedIn   float64  `json:"o"`
	SkinTones bool     `json:"h"`
}

type envelope struct {
	Compressed bool                       `json:"compressed"`
	Categories []CategoryData             `json:"categories"`
	Emojis     map[string]json.RawMessage `json:"emojis"`
	Aliases    map[string]string          `json:"aliases"`
}

// Load decodes a dataset. Compressed datasets are expanded before returning.
func Load(r io.Reader) (*Data, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding emoji data: %w", err)
	}

	d := &Data{
		Compressed: env.Compressed,
		Categories: env.Categories,
		Emojis:     make(map[string]Record, len(env.Emojis)),
		Aliases:    env.Aliases,
		raw:        env.Emojis,
	}
	if d.Aliases == nil {
		d.Aliases = make(map[string]string)
	}

	if d.Compressed {
		if err := d.Uncompress(); err != nil {
			return nil, err
		}
		return d, nil
	}

	for id, raw := range d.raw {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decoding emoji %q: %w", id, err)
		}
		rec.ID = id
		if len(rec.ShortNames) == 0 {
			rec.ShortNames = []string{id}
		}
		if err := finish(&rec); err != nil {
			return nil, fmt.Errorf("emoji %q: %w", id, err)
		}
		d.Emojis[id] = rec
	}
	d.raw = nil
	return d, nil
}

// Default loads the dataset bundled with the binary
func Default() (*Data, error) {
	f, err := dataFS.Open("data/all.json")
	if err != nil {
		return nil, fmt.Errorf("opening bundled emoji data: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Uncompress expands short-key records in place. It runs once: calling it
// on an already expanded dataset is a no-op.
func (d *Data) Uncompress() error {
	if !d.Compressed {
		return nil
	}

	for id, raw := range d.raw {
		var c compactRecord
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("decoding compressed emoji %q: %w", id, err)
		}

		addedIn := c.AddedIn
		if addedIn == 0 {
			addedIn = 6
		}
		rec := Record{
			ID:         id,
			Name:       c.Name,
			Unified:    c.Unified,
			ShortNames: append([]string{id}, c.Names...),
			Keywords:   c.Keywords,
			Emoticons:  c.Emoticons,
			Text:       c.Text,
			AddedIn:    strconv.FormatFloat(addedIn, 'f', 1, 64),
			SkinTones:  c.SkinTones,
		}
		if err := finish(&rec); err != nil {
			return fmt.Errorf("emoji %q: %w", id, err)
		}
		d.Emojis[id] = rec
	}

	d.raw = nil
	d.Compressed = false
	return nil
}

// finish derives the native glyph and search haystack
func finish(rec *Record) error {
	if rec.Native == "" && rec.Unified != "" {
		native, err := NativeFromUnified(rec.Unified)
		if err != nil {
			return err
		}
		rec.Native = native
	}
	rec.Search = BuildSearch(*rec)
	return nil
}

// BuildSearch joins every searchable field of a record, lowercased, one
// token per comma-separated slot.
func BuildSearch(rec Record) string {
	var parts []string
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			return
		}
		for _, p := range parts {
			if p == s {
				return
			}
		}
		parts = append(parts, s)
	}

	for _, n := range rec.ShortNames {
		add(n)
		add(strings.ReplaceAll(n, "_", " "))
	}
	add(rec.Name)
	for _, k := range rec.Keywords {
		add(k)
	}
	for _, e := range rec.Emoticons {
		add(e)
	}
	return strings.Join(parts, ",")
}

// NativeFromUnified converts "1F44D-1F3FB" to the corresponding string
func NativeFromUnified(unified string) (string, error) {
	var b strings.Builder
	for _, part := range strings.Split(unified, "-") {
		cp, err := strconv.ParseUint(part, 16, 32)
		if err != nil {
			return "", fmt.Errorf("invalid code point %q: %w", part, err)
		}
		b.WriteRune(rune(cp))
	}
	return b.String(), nil
}

// Lookup resolves an id (or alias) to its record
func (d *Data) Lookup(id string) (Record, bool) {
	if rec, ok := d.Emojis[id]; ok {
		return rec, true
	}
	if target, ok := d.Aliases[id]; ok {
		rec, ok := d.Emojis[target]
		return rec, ok
	}
	return Record{}, false
}

// Sanitize prepares a record for the given skin tone. Custom records not in
// the dataset may be supplied through extra.
func (d *Data) Sanitize(id string, skin int, extra map[string]Record) (Emoji, error) {
	rec, ok := extra[id]
	if !ok {
		rec, ok = d.Lookup(id)
	}
	if !ok {
		return Emoji{}, fmt.Errorf("%w: %s", ErrUnknownEmoji, id)
	}
	return WithSkin(rec, skin), nil
}

// WithSkin applies a skin tone to a record. Records without skin tone
// support, and tone 1, are returned unmodified apart from colons.
func WithSkin(rec Record, skin int) Emoji {
	e := Emoji{Record: rec, Colons: ":" + rec.ID + ":"}
	if !rec.SkinTones || skin <= MinSkin || skin > MaxSkin || rec.Unified == "" {
		return e
	}

	e.Skin = skin
	e.Colons += fmt.Sprintf(":skin-tone-%d:", skin)

	parts := strings.Split(rec.Unified, "-")
	parts = append(parts[:1], append([]string{skinModifiers[skin]}, parts[1:]...)...)
	e.Unified = strings.Join(parts, "-")
	if native, err := NativeFromUnified(e.Unified); err == nil {
		e.Native = native
	}
	return e
}

// ValidSkin reports whether tone is in 1..6
func ValidSkin(tone int) bool {
	return tone >= MinSkin && tone <= MaxSkin
}

// NewCustom prepares a host-supplied record for the Custom category. Its id
// is its first short name; records without one are rejected.
func NewCustom(rec Record) (Record, bool) {
	if len(rec.ShortNames) == 0 || rec.ShortNames[0] == "" {
		return Record{}, false
	}
	rec.ID = rec.ShortNames[0]
	rec.Custom = true
	if err := finish(&rec); err != nil {
		rec.Unified = ""
		rec.Search = BuildSearch(rec)
	}
	return rec, true
}
