// Package utils holds small helpers shared by the anagrams packages: TOML
// file handling, filesystem checks and text formatting.
package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// IsSeparator checks if a rune separates words on an input line
func IsSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ',' || r == ';'
}

// SplitWords splits an input line into words on whitespace, commas and semicolons.
func SplitWords(line string) []string {
	return strings.FieldsFunc(line, IsSeparator)
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	str := strconv.Itoa(n)
	if n < 1000 {
		return str
	}

	var sb strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(char)
	}
	return sb.String()
}
