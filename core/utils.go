package core

import "strings"

// CleanString trims surrounding whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanDecimal trims `s` and normalizes a decimal comma ("7,5") to the dot
// form so pt-BR payloads parse like any other decimal.
func CleanDecimal(s string) string {
	return strings.Replace(strings.TrimSpace(s), ",", ".", 1)
}
