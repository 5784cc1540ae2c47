package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCurrency renders a USD amount with thousands separators, two
// decimals under $1M and compact suffixes above.
func FormatCurrency(v float64) string {
	if math.Abs(v) >= 1_000_000 {
		return "$" + FormatCompact(v)
	}
	return "$" + groupThousands(v)
}

// FormatCompact shortens large magnitudes to K/M/B suffixes.
func FormatCompact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000_000:
		return trimZeros(v/1_000_000_000) + "B"
	case abs >= 1_000_000:
		return trimZeros(v/1_000_000) + "M"
	case abs >= 1_000:
		return trimZeros(v/1_000) + "K"
	default:
		return trimZeros(v)
	}
}

// FormatPrice keeps enough significant digits for sub-cent meme prices
// while not drowning normal prices in decimals.
func FormatPrice(v float64) string {
	switch {
	case v == 0:
		return "$0"
	case v < 0.000001:
		return "$" + strconv.FormatFloat(v, 'e', 2, 64)
	case v < 0.01:
		return "$" + strconv.FormatFloat(v, 'f', 8, 64)
	case v < 1:
		return "$" + strconv.FormatFloat(v, 'f', 4, 64)
	default:
		return "$" + groupThousands(v)
	}
}

// FormatPercent renders a signed percentage with one decimal.
func FormatPercent(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// TruncateAddress shortens an address to head…tail for display.
func TruncateAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

func trimZeros(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
