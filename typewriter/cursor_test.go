package typewriter

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBlinkOpacity_TriangleWave(t *testing.T) {
	phase := 200 * time.Millisecond
	cases := []struct {
		elapsed time.Duration
		lo, hi  float64
		want    float64
	}{
		{elapsed: 0, lo: 0, hi: 1, want: 1},
		{elapsed: 100 * time.Millisecond, lo: 0, hi: 1, want: 0.5},
		{elapsed: 200 * time.Millisecond, lo: 0, hi: 1, want: 0},
		{elapsed: 300 * time.Millisecond, lo: 0, hi: 1, want: 0.5},
		{elapsed: 400 * time.Millisecond, lo: 0, hi: 1, want: 1},
		{elapsed: 600 * time.Millisecond, lo: 0, hi: 1, want: 0},
		{elapsed: 200 * time.Millisecond, lo: 0.2, hi: 0.8, want: 0.2},
		{elapsed: -time.Millisecond, lo: 0, hi: 1, want: 1},
	}
	for _, tc := range cases {
		if got := blinkOpacity(tc.elapsed, phase, tc.lo, tc.hi); !approx(got, tc.want) {
			t.Fatalf("blinkOpacity(%v, [%v,%v]): got %v, want %v", tc.elapsed, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestFadeOpacity_LinearToZero(t *testing.T) {
	d := 200 * time.Millisecond
	cases := []struct {
		from    float64
		elapsed time.Duration
		want    float64
	}{
		{from: 1, elapsed: 0, want: 1},
		{from: 1, elapsed: 100 * time.Millisecond, want: 0.5},
		{from: 0.6, elapsed: 150 * time.Millisecond, want: 0.15},
		{from: 0.6, elapsed: 200 * time.Millisecond, want: 0},
		{from: 0.6, elapsed: time.Second, want: 0},
	}
	for _, tc := range cases {
		if got := fadeOpacity(tc.from, tc.elapsed, d); !approx(got, tc.want) {
			t.Fatalf("fadeOpacity(%v, %v): got %v, want %v", tc.from, tc.elapsed, got, tc.want)
		}
	}
}

func TestCursor_KeepsBlinkingAfterFinish(t *testing.T) {
	m, clk := newTestModel(t, noVariance(Config{
		Text:               "a",
		KeepCursorOnFinish: true,
		FrameRate:          50,
	}))

	m = clk.advance(m, 100*time.Millisecond)
	if !m.Finished() {
		t.Fatalf("reveal should be finished")
	}

	m = clk.advance(m, 900*time.Millisecond) // t=1000ms, mid-cycle low point
	st := m.State()
	if st.Cursor != CursorBlinking || !approx(st.Opacity, 0) {
		t.Fatalf("at 1000ms: got %v opacity %v, want blinking at 0", st.Cursor, st.Opacity)
	}

	m = clk.advance(m, 200*time.Millisecond)
	if got := m.State().Opacity; !approx(got, 1) {
		t.Fatalf("at 1200ms: opacity %v, want 1", got)
	}

	m = clk.advance(m, time.Minute)
	if !m.timers.pending(timerBlink) || m.State().Cursor != CursorBlinking {
		t.Fatalf("blink stopped after a minute: state %v", m.State().Cursor)
	}
}

func TestCursor_ViewFadesAfterDisappearDelay(t *testing.T) {
	m, clk := newTestModel(t, noVariance(Config{
		Text:                 "a",
		CursorDisappearDelay: time.Second,
		FrameRate:            50,
	}))

	m = clk.advance(m, 100*time.Millisecond)
	if got := m.State().Cursor; got != CursorFading {
		t.Fatalf("after finish: cursor %v, want %v", got, CursorFading)
	}

	m = clk.advance(m, 980*time.Millisecond) // t=1080ms
	if !m.timers.pending(timerBlink) {
		t.Fatalf("cursor should keep blinking during the disappear delay")
	}

	m = clk.advance(m, 20*time.Millisecond) // t=1100ms, ramp starts
	if m.timers.pending(timerBlink) {
		t.Fatalf("blink should stop once the fade begins")
	}
	prev := m.State().Opacity
	for i := 0; i < 9; i++ {
		m = clk.advance(m, 20*time.Millisecond)
		op := m.State().Opacity
		if op > prev {
			t.Fatalf("fade frame %d: opacity rose from %v to %v", i, prev, op)
		}
		prev = op
	}

	m = clk.advance(m, 20*time.Millisecond) // t=1300ms
	st := m.State()
	if st.Cursor != CursorHidden || st.Opacity != 0 {
		t.Fatalf("after fade: got %v opacity %v, want hidden at 0", st.Cursor, st.Opacity)
	}
	if m.timers.pending(timerBlink) || m.timers.pending(timerFade) {
		t.Fatalf("hidden cursor kept timers armed")
	}
}

func TestCursor_TextSimpleFadesWithoutDelay(t *testing.T) {
	m, clk := newTestModel(t, noVariance(Config{
		Text:                 "a",
		CursorKind:           CursorTextSimple,
		CursorDisappearDelay: 5 * time.Second,
		FrameRate:            50,
	}))

	m = clk.advance(m, 100*time.Millisecond)
	if m.timers.pending(timerBlink) {
		t.Fatalf("text cursor should start fading at the finished edge")
	}
	m = clk.advance(m, 200*time.Millisecond)
	if got := m.State().Cursor; got != CursorHidden {
		t.Fatalf("text cursor after blink time: %v, want %v", got, CursorHidden)
	}
}

func TestCursor_DisabledNeverScheduled(t *testing.T) {
	m, clk := newTestModel(t, noVariance(Config{Text: "ab", DisableCursor: true}))

	for i := 0; i < 4; i++ {
		if v := ansi.Strip(m.View()); strings.ContainsAny(v, cursorBlock+defaultCursorChar) {
			t.Fatalf("view %d contains a cursor glyph: %q", i, v)
		}
		m = clk.advance(m, 100*time.Millisecond)
	}
	if !m.Finished() {
		t.Fatalf("reveal should be finished")
	}
	if clk.everArmed(timerBlink) || clk.everArmed(timerFade) {
		t.Fatalf("disabled cursor armed timers: %v", clk.armed)
	}
	if got := m.State().Cursor; got != CursorSuppressed {
		t.Fatalf("cursor state: got %v, want %v", got, CursorSuppressed)
	}
}

func TestCursor_InactiveHoldsFullOpacity(t *testing.T) {
	m, clk := newTestModel(t, noVariance(Config{
		Text:          "abc",
		StartInactive: true,
		Style:         Style{Cursor: CursorStyle{MinOpacity: 0.1, MaxOpacity: 0.9}},
	}))
	if m.timers.pending(timerBlink) {
		t.Fatalf("inactive cursor should not blink")
	}
	if got := m.State().Opacity; !approx(got, 0.9) {
		t.Fatalf("inactive opacity: got %v, want 0.9", got)
	}

	m, _ = m.SetActive(true)
	if !m.timers.pending(timerBlink) {
		t.Fatalf("active cursor should blink")
	}
	m = clk.advance(m, 100*time.Millisecond)

	m, _ = m.SetActive(false)
	if m.timers.pending(timerBlink) {
		t.Fatalf("blink survived deactivation")
	}
	if got := m.State().Opacity; !approx(got, 0.9) {
		t.Fatalf("held opacity: got %v, want 0.9", got)
	}
}

func TestCursor_ResetCancelsPendingFade(t *testing.T) {
	m, clk := newTestModel(t, noVariance(Config{Text: "a", CursorDisappearDelay: time.Second}))
	m = clk.advance(m, 100*time.Millisecond)
	if got := m.State().Cursor; got != CursorFading {
		t.Fatalf("cursor after finish: %v, want %v", got, CursorFading)
	}

	m, _ = m.SetText("abcdefghijklmnopqrstuvwxyz")
	if got := m.State().Cursor; got != CursorBlinking {
		t.Fatalf("cursor after reset: %v, want %v", got, CursorBlinking)
	}
	if m.timers.pending(timerFade) {
		t.Fatalf("fade timer survived reset")
	}

	// The old fade would have started at 1100ms.
	m = clk.advance(m, 1500*time.Millisecond)
	if got := m.State().Cursor; got != CursorBlinking {
		t.Fatalf("stale fade reached the new run: cursor %v", got)
	}
}

func TestParseCursorKind(t *testing.T) {
	cases := []struct {
		in   string
		want CursorKind
		err  bool
	}{
		{in: "view", want: CursorView},
		{in: "text_simple", want: CursorTextSimple},
		{in: " Text-Simple ", want: CursorTextSimple},
		{in: "block", err: true},
	}
	for _, tc := range cases {
		got, err := ParseCursorKind(tc.in)
		if tc.err {
			if !errors.Is(err, ErrUnknownCursorKind) {
				t.Fatalf("ParseCursorKind(%q): got err %v, want ErrUnknownCursorKind", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseCursorKind(%q): got (%q, %v), want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestCursorState_String(t *testing.T) {
	if got := CursorFading.String(); got != "fading" {
		t.Fatalf("CursorFading.String(): got %q", got)
	}
	if got := CursorState(9).String(); got != "CursorState(9)" {
		t.Fatalf("unknown state String(): got %q", got)
	}
}
