package usage

import (
	"net/url"
	"strings"
)

var schemePrefixes = []string{"https://", "http://"}

// Normalize strips a leading http:// or https:// scheme and a leading "www."
// label from identity.
func Normalize(identity string) string {
	s := identity
	for _, prefix := range schemePrefixes {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}

	return strings.TrimPrefix(s, "www.")
}

// Matches reports whether a visit to visited belongs to the tracked identity:
// the normalized visit starts with the normalized tracked identity.
func Matches(visited, tracked string) bool {
	t := Normalize(tracked)
	if t == "" {
		return false
	}
	return strings.HasPrefix(Normalize(visited), t)
}

// hostKey returns the normalized hostname used to bucket identities, and
// false when raw is not a well-formed absolute URL.
func hostKey(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}

	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www."), true
}
