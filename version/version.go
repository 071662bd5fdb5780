// Package version implements myxa's two-slot (major, minor) version
// scheme: ordering, compatibility, and the bump operations the diff
// engine and publish gate use to compute required version jumps.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a package version, a (major, minor) pair. There is no
// patch slot and no upper-bound range syntax; both are non-goals.
type Version struct {
	Major int
	Minor int
}

// Initial is the version stamped on a package's first publish.
var Initial = Version{Major: 1, Minor: 0}

// New constructs a Version from its components.
func New(major, minor int) Version {
	return Version{Major: major, Minor: minor}
}

// Parse parses a "<major>.<minor>" string.
func Parse(s string) (Version, error) {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return Version{}, fmt.Errorf("version: invalid version string %q", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return Version{}, fmt.Errorf("version: invalid major in %q", s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil || minor < 0 {
		return Version{}, fmt.Errorf("version: invalid minor in %q", s)
	}
	return Version{Major: major, Minor: minor}, nil
}

// String renders the version as "<major>.<minor>".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// MarshalJSON renders the version the way spec.md's on-disk schema
// expects: a bare "<major>.<minor>" string, not an object.
func (v Version) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(v.String())), nil
}

// UnmarshalJSON parses the "<major>.<minor>" string form.
func (v *Version) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler so a Version can be used
// as a JSON object key (map[Version]T marshals via TextMarshaler).
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Compatible reports whether two versions share a major, meaning a
// dependent declaring one can in principle be satisfied by the other
// without a major-crossing check.
func Compatible(a, b Version) bool {
	return a.Major == b.Major
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater
// than other, ordering lexicographically by (major, minor).
func Compare(v, other Version) int {
	switch {
	case v.Major != other.Major:
		if v.Major < other.Major {
			return -1
		}
		return 1
	case v.Minor != other.Minor:
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

// Equal reports whether v and other are identical.
func (v Version) Equal(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor
}

// BumpMajor returns the next major version: (major+1, 0).
func (v Version) BumpMajor() Version {
	return Version{Major: v.Major + 1, Minor: 0}
}

// BumpMinor returns the next minor version: (major, minor+1).
func (v Version) BumpMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}
