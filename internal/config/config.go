package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the user config directory
const FileName = "emojitui.yml"

// EnvPrefix marks environment overrides: EMOJITUI_PER_LINE -> per_line
const EnvPrefix = "EMOJITUI_"

// ErrInvalidSkin is returned for skin tones outside 1..6
var ErrInvalidSkin = errors.New("invalid skin tone")

// CustomEmoji is a host-defined emoji as written in the config file
type CustomEmoji struct {
	Name       string   `yaml:"name" koanf:"name"`
	ShortNames []string `yaml:"short_names" koanf:"short_names"`
	Keywords   []string `yaml:"keywords,omitempty" koanf:"keywords"`
	Emoticons  []string `yaml:"emoticons,omitempty" koanf:"emoticons"`
	Text       string   `yaml:"text,omitempty" koanf:"text"`
	ImageURL   string   `yaml:"image_url,omitempty" koanf:"image_url"`
	Native     string   `yaml:"native,omitempty" koanf:"native"`
}

// Config represents the picker preferences
type Config struct {
	Include []string      `yaml:"include,omitempty" koanf:"include"`
	Exclude []string      `yaml:"exclude,omitempty" koanf:"exclude"`
	Custom  []CustomEmoji `yaml:"custom,omitempty" koanf:"custom"`
	Hidden  []string      `yaml:"hidden,omitempty" koanf:"hidden"`

	// Skin is the explicit tone; 0 defers to the stored preference
	Skin        int      `yaml:"skin,omitempty" koanf:"skin"`
	DefaultSkin int      `yaml:"default_skin" koanf:"default_skin"`
	Recent      []string `yaml:"recent,omitempty" koanf:"recent"`

	ShowPreview   bool `yaml:"show_preview" koanf:"show_preview"`
	ShowSkinTones bool `yaml:"show_skin_tones" koanf:"show_skin_tones"`
	PerLine       int  `yaml:"per_line" koanf:"per_line"`
	EmojiSize     int  `yaml:"emoji_size" koanf:"emoji_size"`
	Native        bool `yaml:"native" koanf:"native"`

	Title         string `yaml:"title" koanf:"title"`
	Emoji         string `yaml:"emoji" koanf:"emoji"`
	NotFoundEmoji string `yaml:"not_found_emoji" koanf:"not_found_emoji"`
	AutoFocus     bool   `yaml:"auto_focus" koanf:"auto_focus"`
	MaxResults    int    `yaml:"max_results" koanf:"max_results"`
	LooseSearch   bool   `yaml:"loose_search" koanf:"loose_search"`

	DBPath string `yaml:"db_path,omitempty" koanf:"db_path"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DefaultSkin:   1,
		ShowPreview:   true,
		ShowSkinTones: true,
		PerLine:       4,
		EmojiSize:     3,
		Native:        true,
		Title:         "Pick your emoji…",
		Emoji:         "department_store",
		NotFoundEmoji: "sleuth_or_spy",
		MaxResults:    75,
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "emojiTUI", FileName)
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Write encodes the configuration as YAML
func (c *Config) Write(w io.Writer) error {
	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// Validate checks that the configuration contains usable values
func (c *Config) Validate() error {
	if c.Skin != 0 && !emoji.ValidSkin(c.Skin) {
		return fmt.Errorf("%w: skin %d", ErrInvalidSkin, c.Skin)
	}
	if c.DefaultSkin != 0 && !emoji.ValidSkin(c.DefaultSkin) {
		return fmt.Errorf("%w: default_skin %d", ErrInvalidSkin, c.DefaultSkin)
	}
	if c.PerLine < 1 {
		return fmt.Errorf("per_line must be at least 1, got %d", c.PerLine)
	}
	if c.EmojiSize < 2 {
		return fmt.Errorf("emoji_size must be at least 2, got %d", c.EmojiSize)
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("max_results must be non-negative")
	}
	for i, ce := range c.Custom {
		if len(ce.ShortNames) == 0 || ce.ShortNames[0] == "" {
			return fmt.Errorf("custom[%d] %q needs a short name", i, ce.Name)
		}
	}
	return nil
}

// Records converts the custom emojis to dataset records
func (c *Config) Records() []emoji.Record {
	if len(c.Custom) == 0 {
		return nil
	}
	recs := make([]emoji.Record, 0, len(c.Custom))
	for _, ce := range c.Custom {
		recs = append(recs, emoji.Record{
			Name:       ce.Name,
			ShortNames: ce.ShortNames,
			Keywords:   ce.Keywords,
			Emoticons:  ce.Emoticons,
			Text:       ce.Text,
			ImageURL:   ce.ImageURL,
			Native:     ce.Native,
		})
	}
	return recs
}

// Filter returns a predicate dropping the hidden emoji ids, or nil when
// nothing is hidden.
func (c *Config) Filter() func(emoji.Record) bool {
	if len(c.Hidden) == 0 {
		return nil
	}
	hidden := make(map[string]bool, len(c.Hidden))
	for _, id := range c.Hidden {
		hidden[id] = true
	}
	return func(r emoji.Record) bool {
		return !hidden[r.ID]
	}
}
