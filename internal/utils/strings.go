package utils

import "strings"

// NormalizePhone strips separators and whitespace from a phone number.
func NormalizePhone(s string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "\t", "", "\n", "", "\r", "")
	return replacer.Replace(strings.TrimSpace(s))
}

// SplitList splits comma/semicolon separated values into cleaned slices.
func SplitList(raw string) []string {
	out := []string{}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// JoinList renders a slice back into comma separated storage form.
func JoinList(items []string) string {
	clean := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it != "" {
			clean = append(clean, it)
		}
	}
	return strings.Join(clean, ",")
}
