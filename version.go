package typist

import (
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// ErrBadVersion is returned by ParseRelease for strings that are not
// SemVer 2.0.0.
var ErrBadVersion = errors.New("typist: bad version")

var releaseRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
	`(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?` +
	`(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`)

// Release is a parsed SemVer release number.
type Release struct {
	Major, Minor, Patch int
	Pre                 string
	Build               string
}

// ParseRelease parses "1.2.3", "1.2.3-rc.1" or "1.2.3+build". Surrounding
// whitespace is ignored; a leading "v" is not accepted.
func ParseRelease(s string) (Release, error) {
	m := releaseRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Release{}, fmt.Errorf("%w: %q", ErrBadVersion, s)
	}
	var r Release
	for i, dst := range []*int{&r.Major, &r.Minor, &r.Patch} {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Release{}, fmt.Errorf("%w: %q: %w", ErrBadVersion, s, err)
		}
		*dst = n
	}
	r.Pre, r.Build = m[4], m[5]
	return r, nil
}

func (r Release) String() string {
	s := fmt.Sprintf("%d.%d.%d", r.Major, r.Minor, r.Patch)
	if r.Pre != "" {
		s += "-" + r.Pre
	}
	if r.Build != "" {
		s += "+" + r.Build
	}
	return s
}

// Tag is the git tag of the release.
func (r Release) Tag() string { return "v" + r.String() }

// Prerelease reports whether the release carries a pre-release suffix or
// is still in the 0.x series.
func (r Release) Prerelease() bool { return r.Pre != "" || r.Major == 0 }

// Current returns the release embedded in the module. A malformed VERSION
// file is a build defect, so it panics.
func Current() Release {
	r, err := ParseRelease(embeddedVersion)
	if err != nil {
		panic(err)
	}
	return r
}

// Version returns the embedded release string.
func Version() string { return Current().String() }
