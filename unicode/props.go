package unicode

import "github.com/light-std/ls/ctx"

// IsUpper reports whether cp has the Upper property.
func IsUpper(cp rune) bool { return HasProperty(cp, Upper) }

// IsLower reports whether cp has the Lower property.
func IsLower(cp rune) bool { return HasProperty(cp, Lower) }

// IsAlpha reports whether cp has the Alphabetic property.
func IsAlpha(cp rune) bool { return HasProperty(cp, Alphabetic) }

// IsWhitespace reports whether cp has the White_Space property.
func IsWhitespace(cp rune) bool { return HasProperty(cp, WhiteSpace) }

// ToLower lowercases cp, consulting c's locale for the Turkic dotless-I
// exception (§4.11): under LocaleTurkic, 'I' maps to dotless ı (U+0131)
// instead of 'i'.
func ToLower(c *ctx.Context, cp rune) rune {
	if c != nil && c.Locale == ctx.LocaleTurkic {
		if cp == 'I' {
			return 0x0131
		}
		if cp == 0x0130 { // İ
			return 'i'
		}
	}
	if lo, ok := simpleLower[cp]; ok {
		return lo
	}
	return cp
}

// ToUpper uppercases cp, consulting c's locale for the Turkic dotted-İ
// exception (§4.11): under LocaleTurkic, 'i' maps to İ (U+0130) instead
// of 'I'.
func ToUpper(c *ctx.Context, cp rune) rune {
	if c != nil && c.Locale == ctx.LocaleTurkic {
		if cp == 'i' {
			return 0x0130
		}
	}
	if up, ok := simpleUpper[cp]; ok {
		return up
	}
	return cp
}
