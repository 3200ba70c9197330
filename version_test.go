package typist

import (
	"errors"
	"testing"
)

func TestCurrent_MatchesVersionFile(t *testing.T) {
	r := Current()
	if got, want := r.Tag(), "v"+Version(); got != want {
		t.Fatalf("tag: got %q, want %q", got, want)
	}
	if !r.Prerelease() {
		t.Fatalf("0.x release should report pre-release")
	}
}

func TestParseRelease(t *testing.T) {
	cases := []struct {
		in   string
		want Release
	}{
		{in: "0.1.0", want: Release{Minor: 1}},
		{in: " 1.4.2\n", want: Release{Major: 1, Minor: 4, Patch: 2}},
		{in: "2.0.0-rc.1", want: Release{Major: 2, Pre: "rc.1"}},
		{in: "2.0.0-rc.1+ci.42", want: Release{Major: 2, Pre: "rc.1", Build: "ci.42"}},
	}
	for _, tc := range cases {
		got, err := ParseRelease(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseRelease(%q): got (%+v, %v), want %+v", tc.in, got, err, tc.want)
		}
		if back, _ := ParseRelease(got.String()); back != got {
			t.Fatalf("String of %q does not parse back: %q", tc.in, got.String())
		}
	}
}

func TestParseRelease_Rejects(t *testing.T) {
	for _, in := range []string{"v0.1.0", "0.1", "0.01.0", "1.2.3-", "", "99999999999999999999.0.0"} {
		if _, err := ParseRelease(in); !errors.Is(err, ErrBadVersion) {
			t.Fatalf("ParseRelease(%q): got err %v, want ErrBadVersion", in, err)
		}
	}
}

func TestRelease_Prerelease(t *testing.T) {
	cases := []struct {
		r    Release
		want bool
	}{
		{r: Release{Major: 1}, want: false},
		{r: Release{Major: 1, Pre: "beta"}, want: true},
		{r: Release{Minor: 9}, want: true},
		{r: Release{Major: 3, Build: "x"}, want: false},
	}
	for _, tc := range cases {
		if got := tc.r.Prerelease(); got != tc.want {
			t.Fatalf("%s Prerelease(): got %v, want %v", tc.r, got, tc.want)
		}
	}
}
