package util

import "strings"

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// FirstToken returns the first whitespace-delimited word of s, or "".
func FirstToken(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// LocalPart returns the part of an email address before the first '@'.
// An address without '@' is returned whole.
func LocalPart(mail string) string {
	if i := strings.IndexByte(mail, '@'); i >= 0 {
		return mail[:i]
	}
	return mail
}
