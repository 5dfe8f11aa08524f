package schemakit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is a parsed engine version, extracted from whatever banner string
// the engine reports (for example "PostgreSQL 16.2 on x86_64" or
// "8.0.36-debian"). Only the leading dotted numeric run is kept.
type Version struct {
	Major int
	Minor int
	Patch int
	Text  string // the matched numeric run, e.g. "16.2"
}

var versionPattern = regexp.MustCompile(`\d+(?:\.\d+)*`)

// ExtractVersion finds the first dotted numeric version in s and parses it.
// Returns ErrVersionNotFound when no numeric pattern exists.
func ExtractVersion(s string) (Version, error) {
	match := versionPattern.FindString(s)
	if match == "" {
		return Version{}, fmt.Errorf("%w: %q", ErrVersionNotFound, s)
	}

	var v Version
	v.Text = match

	parts := strings.Split(match, ".")
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			// Digits only by construction; overflow is the only failure mode.
			return Version{}, fmt.Errorf("%w: %q", ErrVersionNotFound, s)
		}

		switch i {
		case 0:
			v.Major = n
		case 1:
			v.Minor = n
		case 2:
			v.Patch = n
		}
	}

	return v, nil
}

// AtLeast reports whether v is the same as or newer than major.minor.patch.
func (v Version) AtLeast(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Patch >= patch
}

func (v Version) String() string {
	return v.Text
}
