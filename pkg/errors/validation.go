package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDocExt validates the extension used for generated documentation page
// links (the "html" in "semantic.Blog.html").
func ValidateDocExt(ext string) error {
	if ext == "" {
		return New(ErrCodeInvalidInput, "doc extension cannot be empty")
	}
	if strings.HasPrefix(ext, ".") {
		return New(ErrCodeInvalidInput, "doc extension must not start with a dot: %q", ext)
	}
	for _, r := range ext {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return New(ErrCodeInvalidInput, "doc extension contains invalid characters: %q", ext)
		}
	}
	return nil
}

// colorRegex accepts Graphviz color names and #rrggbb / #rrggbbaa values.
var colorRegex = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9]*|#[0-9a-fA-F]{6}([0-9a-fA-F]{2})?)$`)

// ValidateColor validates a highlight color. An empty color is valid and
// disables highlighting.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid color: %q", color)
	}
	return nil
}

// ValidateTags validates tag predicates. Tags are whitespace separated in ALPS
// documents, so a tag itself can never contain whitespace.
func ValidateTags(tags []string) error {
	for _, t := range tags {
		if t == "" {
			return New(ErrCodeInvalidInput, "tag cannot be empty")
		}
		if strings.IndexFunc(t, unicode.IsSpace) >= 0 {
			return New(ErrCodeInvalidInput, "tag contains whitespace: %q", t)
		}
	}
	return nil
}
