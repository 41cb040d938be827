// Package version provides parsing and comparison of dotted release versions
// as they appear in RELEASE.INFO metadata and repository names.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed dotted version with an optional build suffix,
// e.g. "2.0.0-177".
type Version struct {
	Major int
	Minor int
	Patch int
	Build int
}

// ParseVersion parses strings of the form "MAJOR[.MINOR[.PATCH]][-BUILD]".
func ParseVersion(s string) (*Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty version string")
	}

	v := &Version{}

	base := s
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		base = s[:idx]
		build, err := strconv.Atoi(s[idx+1:])
		if err != nil {
			return nil, fmt.Errorf("invalid build number in %q: %w", s, err)
		}
		if build < 0 {
			return nil, fmt.Errorf("negative build number in %q", s)
		}
		v.Build = build
	}

	parts := strings.Split(base, ".")
	if len(parts) > 3 {
		return nil, fmt.Errorf("too many version components in %q", s)
	}

	dst := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid version component %q in %q: %w", p, s, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("negative version component in %q", s)
		}
		*dst[i] = n
	}

	return v, nil
}

// Compare returns -1, 0 or 1 if v is lower than, equal to, or higher than o.
func (v *Version) Compare(o *Version) int {
	pairs := [][2]int{
		{v.Major, o.Major},
		{v.Minor, o.Minor},
		{v.Patch, o.Patch},
		{v.Build, o.Build},
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// String renders the version in "MAJOR.MINOR.PATCH[-BUILD]" form.
func (v *Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Build > 0 {
		s += fmt.Sprintf("-%d", v.Build)
	}
	return s
}
