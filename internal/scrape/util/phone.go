package util

import "strings"

const phoneDigits = 10

// FormatPhone keeps the digits of raw, truncated to ten, and renders them as
// space separated pairs ("01 23 45 67 89"). A trailing odd digit is dropped;
// fewer than ten digits yield fewer pairs.
func FormatPhone(raw string) string {
	digits := make([]byte, 0, phoneDigits)
	for i := 0; i < len(raw) && len(digits) < phoneDigits; i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}

	var b strings.Builder
	for i := 0; i+1 < len(digits); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.Write(digits[i : i+2])
	}
	return b.String()
}
