package util

import (
	"net/url"
	"strings"
)

// StripQuery drops the query string (and anything after it) from an href.
func StripQuery(href string) string {
	if i := strings.IndexByte(href, '?'); i >= 0 {
		return href[:i]
	}
	return href
}

// Resolve resolves ref against base. Relative refs like "/fr/office/x" become
// absolute; absolute refs are returned as-is.
func Resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", err
	}
	return b.ResolveReference(r).String(), nil
}

// EnsureScheme prepends https:// to website values scraped without one.
func EnsureScheme(site string) string {
	if site == "" || strings.HasPrefix(site, "http") {
		return site
	}
	return "https://" + site
}
