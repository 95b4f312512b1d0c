package platform

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// IsOlder reports whether version is strictly older than reference.
// ok is false when either side is not a comparable version (property
// references such as "${quarkus-plugin.version}" or qualifiers like ".Final").
func IsOlder(version, reference string) (older, ok bool) {
	v, err := parseVersion(version)
	if err != nil {
		return false, false
	}
	r, err := parseVersion(reference)
	if err != nil {
		return false, false
	}
	return v.LessThan(r), true
}

func parseVersion(s string) (*semver.Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	return semver.NewVersion(s)
}
