package flexview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(`
scroll_step = 1

[scrollbar]
thumb = "#"
thumb_color = "#ff8800"
`)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.ScrollStep = 1
	want.Scrollbar.Thumb = "#"
	want.Scrollbar.ThumbColor = "#ff8800"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Scrollbar.ThumbStyle().FG; got != Hex(0xff8800) {
		t.Errorf("thumb color %+v", got)
	}
	if got := cfg.Scrollbar.thumbRune(AxisVertical); got != '#' {
		t.Errorf("thumb rune %q", got)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"syntax", "scroll_step = ", "parsing config"},
		{"step", "scroll_step = 0", "scroll_step"},
		{"wheel", "wheel_step = -2", "wheel_step"},
		{"thumb size", "min_thumb_size = 0", "min_thumb_size"},
		{"wide glyph", "[scrollbar]\ntrack = \"世\"", "scrollbar.track"},
		{"two glyphs", "[scrollbar]\nhthumb = \"==\"", "scrollbar.hthumb"},
		{"color", "[scrollbar]\ntrack_color = \"mauve\"", "scrollbar.track_color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.text)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flexview.toml")
	if err := os.WriteFile(path, []byte("wheel_step = 5\ndebug = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WheelStep != 5 || !cfg.Debug || cfg.ScrollStep != 3 {
		t.Errorf("got %+v", cfg)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	} else if !strings.Contains(err.Error(), "missing.toml") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"", DefaultColor(), false},
		{"default", DefaultColor(), false},
		{"red", Red, false},
		{"Bright_Black", BrightBlack, false},
		{" white ", White, false},
		{"#00ff7f", RGB(0, 255, 127), false},
		{"208", PaletteColor(208), false},
		{"256", Color{}, true},
		{"#fff", Color{}, true},
		{"#gggggg", Color{}, true},
		{"chartreuse", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in      string
		want    Dimension
		wantErr bool
	}{
		{"", Auto, false},
		{"auto", Auto, false},
		{"FILL", Fill, false},
		{"12", Cells(12), false},
		{"50%", Percent(50), false},
		{"33.5 %", Percent(33.5), false},
		{"-1", Auto, true},
		{"-5%", Auto, true},
		{"wide", Auto, true},
	}
	for _, tt := range tests {
		got, err := ParseDimension(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDimension(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDimension(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if err == nil && tt.in != "" {
			if back, _ := ParseDimension(got.String()); back != got {
				t.Errorf("%q does not round-trip through %q", tt.in, got.String())
			}
		}
	}
}
