package variables

import "strings"

// SpaceClass is a regexp character class for the whitespace set that
// surrounds keys, both in variable rows and inside placeholder braces.
const SpaceClass = `[\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]`

// IsSpace reports whether r belongs to SpaceClass. U+0085 is not part of it.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0x00a0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

// Trim removes leading and trailing SpaceClass runes from s.
func Trim(s string) string {
	return strings.TrimFunc(s, IsSpace)
}
