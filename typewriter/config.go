package typewriter

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"time"
)

// Config configures a typewriter Model.
//
// Zero values select the documented defaults, so Config{Text: "hi"} types
// "hi" at the fast tier with a blinking cursor that fades after finishing.
// DefaultConfig spells every default out.
type Config struct {
	// Text to reveal. Characters are grapheme clusters.
	Text string

	// StartInactive holds the animation until SetActive(true).
	StartInactive bool

	// Backwards starts with the full text shown and erases it.
	Backwards bool

	// Speed selects the base per-character delay. Ignored when
	// DelayPerChar is set.
	Speed Speed
	// DelayPerChar overrides the Speed tier.
	DelayPerChar time.Duration
	// DelayVariance bounds the random spread applied to every character.
	// Zero means 100ms; a negative value disables the spread, which is how
	// to get a fixed cadence (every character waits exactly the base delay).
	DelayVariance time.Duration

	// StartDelay is waited after every activation before the first tick.
	StartDelay time.Duration

	// CursorBlinkTime is the length of one blink phase and of the final
	// fade. Zero means 200ms.
	CursorBlinkTime time.Duration
	// CursorDisappearDelay is how long a CursorView cursor keeps blinking
	// after the text finished. Zero means 2s; negative means no wait.
	CursorDisappearDelay time.Duration

	// NoReserveSpace renders only the revealed text instead of padding the
	// rest with blanks.
	NoReserveSpace bool
	// KeepCursorOnFinish keeps the cursor blinking after the reveal ends.
	KeepCursorOnFinish bool
	// DisableCursor removes the cursor entirely.
	DisableCursor bool

	CursorKind CursorKind
	// CursorChar is the glyph of a CursorTextSimple cursor. Empty means "|".
	CursorChar string

	Style Style

	// FrameRate drives the cursor opacity interpolation. Zero means 30.
	FrameRate int

	// Rand draws the per-character variance. Nil uses the global source.
	Rand *rand.Rand

	// OnFinish is called once when the reveal reaches its end.
	OnFinish func()

	Logger *slog.Logger
}

const (
	defaultDelayVariance        = 100 * time.Millisecond
	defaultCursorBlinkTime      = 200 * time.Millisecond
	defaultCursorDisappearDelay = 2 * time.Second
	defaultCursorChar           = "|"
	defaultFrameRate            = 30
)

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Speed:                SpeedFast,
		DelayVariance:        defaultDelayVariance,
		CursorBlinkTime:      defaultCursorBlinkTime,
		CursorDisappearDelay: defaultCursorDisappearDelay,
		CursorKind:           CursorView,
		CursorChar:           defaultCursorChar,
		Style:                DefaultStyle(),
		FrameRate:            defaultFrameRate,
	}
}

// settings is Config after defaulting. It is computed once in New and
// only the text and direction change afterwards.
type settings struct {
	text      string
	backwards bool

	baseDelay time.Duration
	variance  time.Duration

	startDelay     time.Duration
	blinkTime      time.Duration
	disappearDelay time.Duration
	frame          time.Duration

	reserveSpace  bool
	hideOnFinish  bool
	disableCursor bool

	kind  CursorKind
	glyph string
	style Style

	rand     *rand.Rand
	onFinish func()
	log      *slog.Logger
}

func (cfg Config) resolve() settings {
	s := settings{
		text:          cfg.Text,
		backwards:     cfg.Backwards,
		startDelay:    max(cfg.StartDelay, 0),
		reserveSpace:  !cfg.NoReserveSpace,
		hideOnFinish:  !cfg.KeepCursorOnFinish,
		disableCursor: cfg.DisableCursor,
		style:         cfg.Style.resolved(),
		rand:          cfg.Rand,
		onFinish:      cfg.OnFinish,
		log:           cfg.Logger,
	}

	s.baseDelay = cfg.DelayPerChar
	if s.baseDelay <= 0 {
		s.baseDelay = cfg.Speed.Delay()
	}

	switch {
	case cfg.DelayVariance == 0:
		s.variance = defaultDelayVariance
	case cfg.DelayVariance < 0:
		s.variance = 0
	default:
		s.variance = cfg.DelayVariance.Truncate(time.Millisecond)
	}

	s.blinkTime = cfg.CursorBlinkTime
	if s.blinkTime <= 0 {
		s.blinkTime = defaultCursorBlinkTime
	}

	switch {
	case cfg.CursorDisappearDelay == 0:
		s.disappearDelay = defaultCursorDisappearDelay
	case cfg.CursorDisappearDelay < 0:
		s.disappearDelay = 0
	default:
		s.disappearDelay = cfg.CursorDisappearDelay
	}

	fps := cfg.FrameRate
	if fps <= 0 {
		fps = defaultFrameRate
	}
	s.frame = time.Second / time.Duration(fps)

	s.kind = cfg.CursorKind
	if !s.kind.valid() {
		s.kind = CursorView
	}
	s.glyph = cfg.CursorChar
	if s.glyph == "" {
		s.glyph = defaultCursorChar
	}

	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// fadeDelay is the wait between the finished edge and the fade ramp.
// Text-glyph cursors fade right away.
func (s settings) fadeDelay() time.Duration {
	if s.kind == CursorTextSimple {
		return 0
	}
	return s.disappearDelay
}
