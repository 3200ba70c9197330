package gallery

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/typist/typewriter"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	ErrDuplicateID = errors.New("gallery: duplicate example id")
	ErrMissingID   = errors.New("gallery: example without id")
)

// Catalog is the content of the gallery: a header pair and the example
// sections.
type Catalog struct {
	Header    Params    `yaml:"header"`
	Subheader Params    `yaml:"subheader"`
	Sections  []Section `yaml:"sections"`
}

type Section struct {
	Title    string    `yaml:"title"`
	Examples []Example `yaml:"examples"`
}

type Example struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Typewriter  Params `yaml:"typewriter"`
}

// Params is the YAML form of typewriter.Config. Durations use Go syntax
// ("150ms", "2s").
type Params struct {
	Text string `yaml:"text"`

	Speed         string        `yaml:"speed"`
	DelayPerChar  time.Duration `yaml:"delay_per_char"`
	DelayVariance time.Duration `yaml:"delay_variance"`
	StartDelay    time.Duration `yaml:"start_delay"`

	Backwards    bool  `yaml:"backwards"`
	ReserveSpace *bool `yaml:"reserve_space"`

	Cursor               string        `yaml:"cursor"`
	CursorChar           string        `yaml:"cursor_char"`
	CursorBlinkTime      time.Duration `yaml:"cursor_blink_time"`
	CursorDisappearDelay time.Duration `yaml:"cursor_disappear_delay"`
	KeepCursor           bool          `yaml:"keep_cursor"`
	DisableCursor        bool          `yaml:"disable_cursor"`

	Color       string  `yaml:"color"`
	CursorColor string  `yaml:"cursor_color"`
	Bold        bool    `yaml:"bold"`
	MinOpacity  float64 `yaml:"min_opacity"`
	MaxOpacity  float64 `yaml:"max_opacity"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() Catalog {
	cat, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("gallery: embedded catalog: %v", err))
	}
	return cat
}

func LoadCatalog(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return ReadCatalog(f)
}

func ReadCatalog(r io.Reader) (Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog. Unknown fields are
// rejected so typos do not silently fall back to defaults.
func ParseCatalog(data []byte) (Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil && !errors.Is(err, io.EOF) {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := cat.validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

func (c Catalog) validate() error {
	seen := map[string]bool{}
	for si, s := range c.Sections {
		for ei, ex := range s.Examples {
			if ex.ID == "" {
				return fmt.Errorf("section %d example %d: %w", si, ei, ErrMissingID)
			}
			if seen[ex.ID] {
				return fmt.Errorf("%w: %q", ErrDuplicateID, ex.ID)
			}
			seen[ex.ID] = true
			if _, err := ex.Typewriter.Config(); err != nil {
				return fmt.Errorf("example %q: %w", ex.ID, err)
			}
		}
	}
	if _, err := c.Header.Config(); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	if _, err := c.Subheader.Config(); err != nil {
		return fmt.Errorf("subheader: %w", err)
	}
	return nil
}

// Examples flattens the sections in display order.
func (c Catalog) Examples() []Example {
	var out []Example
	for _, s := range c.Sections {
		out = append(out, s.Examples...)
	}
	return out
}

// Config converts the parameters. Text, renderer, logger and activity are
// left to the caller.
func (p Params) Config() (typewriter.Config, error) {
	cfg := typewriter.Config{
		Text:                 p.Text,
		Backwards:            p.Backwards,
		DelayPerChar:         p.DelayPerChar,
		DelayVariance:        p.DelayVariance,
		StartDelay:           p.StartDelay,
		CursorBlinkTime:      p.CursorBlinkTime,
		CursorDisappearDelay: p.CursorDisappearDelay,
		KeepCursorOnFinish:   p.KeepCursor,
		DisableCursor:        p.DisableCursor,
		CursorChar:           p.CursorChar,
		Style:                typewriter.DefaultStyle(),
	}
	if p.ReserveSpace != nil {
		cfg.NoReserveSpace = !*p.ReserveSpace
	}
	if p.Speed != "" {
		sp, err := typewriter.ParseSpeed(p.Speed)
		if err != nil {
			return typewriter.Config{}, fmt.Errorf("speed: %w", err)
		}
		cfg.Speed = sp
	}
	if p.Cursor != "" {
		k, err := typewriter.ParseCursorKind(p.Cursor)
		if err != nil {
			return typewriter.Config{}, fmt.Errorf("cursor: %w", err)
		}
		cfg.CursorKind = k
	}

	if p.Color != "" {
		cfg.Style.Text = cfg.Style.Text.Foreground(lipgloss.Color(p.Color))
		cfg.Style.Cursor.Color = lipgloss.Color(p.Color)
	}
	if p.CursorColor != "" {
		cfg.Style.Cursor.Color = lipgloss.Color(p.CursorColor)
	}
	cfg.Style.Cursor.Bold = p.Bold
	if p.MinOpacity != 0 || p.MaxOpacity != 0 {
		cfg.Style.Cursor.MinOpacity = p.MinOpacity
		cfg.Style.Cursor.MaxOpacity = p.MaxOpacity
	}
	return cfg, nil
}
