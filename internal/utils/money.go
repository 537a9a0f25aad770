package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatWon renders a whole-KRW amount with thousand separators.
func FormatWon(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%s원", sign, Comma(amount))
}

// Comma renders an amount with thousand separators and no currency
// marker, for contexts that cannot print Hangul (PDF fonts).
func Comma(n int64) string {
	if n < 0 {
		return "-" + Comma(-n)
	}
	return formatThousand(n)
}

// ParseWon parses "60,000원" or "60000" into a whole-KRW integer.
func ParseWon(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "원")
	replacer := strings.NewReplacer(",", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid won amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
