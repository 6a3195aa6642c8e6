package flexview

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ScrollbarConfig controls how scrollbars are drawn.
type ScrollbarConfig struct {
	Track      string `toml:"track"`
	Thumb      string `toml:"thumb"`
	HTrack     string `toml:"htrack"`
	HThumb     string `toml:"hthumb"`
	TrackColor string `toml:"track_color"`
	ThumbColor string `toml:"thumb_color"`
}

// Config holds the tunables of the engines.
type Config struct {
	// ScrollStep is the distance of one arrow-key scroll.
	ScrollStep int `toml:"scroll_step"`
	// WheelStep is the distance of one wheel notch, applied by input
	// adapters before calling HandleScrollEvent.
	WheelStep int `toml:"wheel_step"`
	// MinThumbSize keeps thumbs visible on long content.
	MinThumbSize int `toml:"min_thumb_size"`

	Scrollbar ScrollbarConfig `toml:"scrollbar"`
	Debug     bool            `toml:"debug"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		ScrollStep:   3,
		WheelStep:    3,
		MinThumbSize: 1,
		Scrollbar: ScrollbarConfig{
			Track:      "│",
			Thumb:      "┃",
			HTrack:     "─",
			HThumb:     "━",
			TrackColor: "brightblack",
			ThumbColor: "white",
		},
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// ParseConfig decodes TOML text over the defaults.
func ParseConfig(text string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(text, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and that every glyph and color parses.
func (c Config) Validate() error {
	if c.ScrollStep < 1 {
		return errors.Errorf("scroll_step must be at least 1, got %d", c.ScrollStep)
	}
	if c.WheelStep < 1 {
		return errors.Errorf("wheel_step must be at least 1, got %d", c.WheelStep)
	}
	if c.MinThumbSize < 1 {
		return errors.Errorf("min_thumb_size must be at least 1, got %d", c.MinThumbSize)
	}
	runes := map[string]string{
		"scrollbar.track":  c.Scrollbar.Track,
		"scrollbar.thumb":  c.Scrollbar.Thumb,
		"scrollbar.htrack": c.Scrollbar.HTrack,
		"scrollbar.hthumb": c.Scrollbar.HThumb,
	}
	for key, s := range runes {
		if utf8.RuneCountInString(s) != 1 || TextWidth(s) != 1 {
			return errors.Errorf("%s must be a single narrow character, got %q", key, s)
		}
	}
	if _, err := ParseColor(c.Scrollbar.TrackColor); err != nil {
		return errors.Wrap(err, "scrollbar.track_color")
	}
	if _, err := ParseColor(c.Scrollbar.ThumbColor); err != nil {
		return errors.Wrap(err, "scrollbar.thumb_color")
	}
	return nil
}

func firstRune(s string, fallback rune) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || TextWidth(string(r)) != 1 {
		return fallback
	}
	return r
}

func (s ScrollbarConfig) trackRune(axis Axis) rune {
	if axis == AxisHorizontal {
		return firstRune(s.HTrack, '─')
	}
	return firstRune(s.Track, '│')
}

func (s ScrollbarConfig) thumbRune(axis Axis) rune {
	if axis == AxisHorizontal {
		return firstRune(s.HThumb, '━')
	}
	return firstRune(s.Thumb, '┃')
}

// TrackStyle returns the paint style of the track.
func (s ScrollbarConfig) TrackStyle() Style {
	c, err := ParseColor(s.TrackColor)
	if err != nil {
		c = BrightBlack
	}
	return DefaultStyle().Foreground(c)
}

// ThumbStyle returns the paint style of the thumb.
func (s ScrollbarConfig) ThumbStyle() Style {
	c, err := ParseColor(s.ThumbColor)
	if err != nil {
		c = White
	}
	return DefaultStyle().Foreground(c)
}

var namedColors = map[string]Color{
	"black":         Black,
	"red":           Red,
	"green":         Green,
	"yellow":        Yellow,
	"blue":          Blue,
	"magenta":       Magenta,
	"cyan":          Cyan,
	"white":         White,
	"brightblack":   BrightBlack,
	"brightred":     BrightRed,
	"brightgreen":   BrightGreen,
	"brightyellow":  BrightYellow,
	"brightblue":    BrightBlue,
	"brightmagenta": BrightMagenta,
	"brightcyan":    BrightCyan,
	"brightwhite":   BrightWhite,
}

// ParseColor accepts "default", a basic color name, a palette index
// ("0".."255") or "#rrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "default":
		return DefaultColor(), nil
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return Color{}, errors.Errorf("invalid hex color %q", s)
		}
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return Color{}, errors.Wrapf(err, "invalid hex color %q", s)
		}
		return Hex(uint32(v)), nil
	}
	if c, ok := namedColors[strings.ReplaceAll(s, "_", "")]; ok {
		return c, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Color{}, errors.Errorf("unknown color %q", s)
	}
	if n < 0 || n > 255 {
		return Color{}, errors.Errorf("palette index %d out of range", n)
	}
	return PaletteColor(uint8(n)), nil
}
