// Package version parses release and tag names into comparable semantic
// versions.
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Zero is the version 0.0.0.
var Zero = MustParse("0.0.0")

// majorMinorRe matches versions without a patch component, e.g. "1.2".
var majorMinorRe = regexp.MustCompile(`^\d+\.\d+$`)

// Version is an immutable semantic version.
// The zero value is not usable, versions are created with Parse.
type Version struct {
	v *semver.Version
}

// Parse converts a tag or release name into a Version.
// A single leading "v" is removed and a missing patch component is completed
// with ".0". Every other deviation from the semantic versioning format is
// reported as an error.
func Parse(s string) (*Version, error) {
	normalized := normalize(s)

	v, err := semver.StrictNewVersion(normalized)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q failed: %w", s, err)
	}

	return &Version{v: v}, nil
}

// MustParse is like Parse but panics if s can not be parsed.
func MustParse(s string) *Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return v
}

// normalize returns s without a leading "v" and with a ".0" patch component
// appended when it only consists of a major and minor number.
func normalize(s string) string {
	s = strings.TrimPrefix(s, "v")

	if majorMinorRe.MatchString(s) {
		return s + ".0"
	}

	return s
}

// Prerelease returns the pre-release marker, it is empty for releases.
func (v *Version) Prerelease() string {
	return v.v.Prerelease()
}

// IsPrerelease returns true if the version has a pre-release marker.
func (v *Version) IsPrerelease() bool {
	return v.v.Prerelease() != ""
}

// Compare returns -1, 0 or 1 if v is lower, equal or greater than o.
// A pre-release is lower than the release with the same major, minor and
// patch numbers.
func (v *Version) Compare(o *Version) int {
	return v.v.Compare(o.v)
}

// GreaterThan returns true if v is strictly greater than o.
func (v *Version) GreaterThan(o *Version) bool {
	return v.Compare(o) > 0
}

// String returns the version without a "v" prefix, e.g. "1.2.3" or
// "1.2.3-rc1".
func (v *Version) String() string {
	return v.v.String()
}

// Tag returns the git tag name for the version, e.g. "v1.2.3".
func (v *Version) Tag() string {
	return "v" + v.String()
}
