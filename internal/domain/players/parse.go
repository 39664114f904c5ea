package players

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseCount reads the leading integer of raw and falls back to 0 when there is
// none. "12abc" is 12, "3.9" is 3, "abc" and "" are 0. A "0x" prefix is read as
// hexadecimal. Values outside the int range also become 0.
func ParseCount(raw string) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], base, strconv.IntSize)
	if err != nil {
		return 0
	}
	if neg {
		n = -n
	}
	return int(n)
}

// ParseCoverage splits comma separated names, trimming blanks and dropping empties.
func ParseCoverage(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// FormatCoverage joins coverage names the way they are typed in.
func FormatCoverage(names []string) string {
	return strings.Join(names, ", ")
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}

func normalizeKey(raw string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "_", ""))
}
