package export

import (
	"math/big"
	"strings"
)

// toFixed3 renders v with exactly three fractional digits, independent of locale.
// Rounding is computed on the exact binary value of v; a tie rounds away from zero.
func toFixed3(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	x := new(big.Float).SetPrec(256).SetFloat64(v)
	x.Mul(x, big.NewFloat(1000))
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int(nil)

	digits := n.String()
	if len(digits) < 4 {
		digits = strings.Repeat("0", 4-len(digits)) + digits
	}
	s := digits[:len(digits)-3] + "." + digits[len(digits)-3:]
	if neg {
		return "-" + s
	}
	return s
}

const upperHex = "0123456789ABCDEF"

// encodeURIComponent percent-encodes every UTF-8 byte of s except the
// unreserved set A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
