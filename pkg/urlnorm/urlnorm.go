// Package urlnorm canonicalizes product URLs for duplicate detection.
package urlnorm

import (
	"net/url"
	"strings"
)

// Normalize maps a raw URL string to its canonical comparison key.
//
// Scheme defaults to https when missing, scheme/host/path are lower-cased,
// a single trailing slash is stripped from the path and the fragment is
// dropped. The query string is kept verbatim: product variants are often
// query-encoded, so stripping it would merge distinct items. If the input
// does not parse as a URL the trimmed raw string is returned, which still
// catches exact-string duplicates.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}

	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	if u.Scheme == "" {
		u, err = url.Parse("https://" + s)
		if err != nil {
			return s
		}
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	// Strip one trailing slash only; internal repeated slashes are kept.
	path := strings.ToLower(u.Path)
	if strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	u.Path = path
	u.RawPath = ""

	return u.String()
}
