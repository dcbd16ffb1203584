package font

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encode converts UTF-8 text into the byte form Text understands. Runes
// with a Windows-1252 encoding become that single byte; other runes of the
// Basic Multilingual Plane become a "|" escape carrying the code point. A
// literal "|" is escaped as code 0x007C and runes above U+FFFF become "?".
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '|':
			b.WriteString("|\x00|")
		case r < utf8.RuneSelf:
			b.WriteByte(byte(r))
		case r > 0xFFFF:
			b.WriteByte('?')
		default:
			if c, ok := charmap.Windows1252.EncodeRune(r); ok {
				b.WriteByte(c)
				continue
			}
			b.WriteByte('|')
			b.WriteByte(byte(r >> 8))
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}
