package utils

import (
	"regexp"
	"strings"
)

const maxExtensionLength = 8

var extensionChars = regexp.MustCompile(`^[a-z0-9]+$`)

// GuessExtension returns the lowercased extension of filename including the
// leading dot, or "" when there is none, it is implausibly long, or it holds
// anything but letters and digits.
func GuessExtension(filename string) string {
	base := strings.TrimSpace(filename)
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return ""
	}
	ext := strings.ToLower(base[i+1:])
	if len(ext) > maxExtensionLength || !extensionChars.MatchString(ext) {
		return ""
	}
	return "." + ext
}

// NormalizeExtension makes sure a non-empty extension starts with a dot.
func NormalizeExtension(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
