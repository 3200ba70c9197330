package typewriter

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownSpeed is returned by ParseSpeed for names outside the tier table.
var ErrUnknownSpeed = errors.New("typewriter: unknown speed")

// Speed names a preset per-character delay.
type Speed string

const (
	SpeedSlow     Speed = "slow"
	SpeedMedium   Speed = "medium"
	SpeedFast     Speed = "fast"
	SpeedVeryFast Speed = "very_fast"
	SpeedFastest  Speed = "fastest"
)

var speedDelays = map[Speed]time.Duration{
	SpeedSlow:     150 * time.Millisecond,
	SpeedMedium:   125 * time.Millisecond,
	SpeedFast:     100 * time.Millisecond,
	SpeedVeryFast: 75 * time.Millisecond,
	SpeedFastest:  55 * time.Millisecond,
}

// Speeds lists the tiers from slowest to fastest.
func Speeds() []Speed {
	return []Speed{SpeedSlow, SpeedMedium, SpeedFast, SpeedVeryFast, SpeedFastest}
}

// Delay returns the base per-character delay of the tier.
// Unknown tiers report the SpeedFast delay.
func (s Speed) Delay() time.Duration {
	if d, ok := speedDelays[s]; ok {
		return d
	}
	return speedDelays[SpeedFast]
}

// ParseSpeed parses a tier name. Matching ignores case and accepts "-" in
// place of "_" ("very-fast").
func ParseSpeed(name string) (Speed, error) {
	s := Speed(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	if _, ok := speedDelays[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSpeed, name)
	}
	return s, nil
}
