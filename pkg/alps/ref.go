package alps

import (
	"strings"

	"github.com/matzehuels/alpsviz/pkg/errors"
)

// Ref is a parsed fragment reference.
type Ref struct {
	File string // empty for same-document references
	ID   string
}

// ParseRef parses "#id" or "file#id". Anything without a "#" or with an empty
// fragment is rejected.
func ParseRef(s string) (Ref, error) {
	i := strings.IndexByte(s, '#')
	if i < 0 {
		return Ref{}, errors.New(errors.ErrCodeInvalidReferenceFormat, "reference %q has no '#' separator", s)
	}
	id := s[i+1:]
	if id == "" {
		return Ref{}, errors.New(errors.ErrCodeInvalidReferenceFormat, "reference %q has an empty fragment", s)
	}
	return Ref{File: s[:i], ID: id}, nil
}

// IsInternal reports whether the reference points into the same document.
func (r Ref) IsInternal() bool { return r.File == "" }

// Internal returns the same-document form "#id".
func (r Ref) Internal() string { return "#" + r.ID }

// String returns the reference in its source form.
func (r Ref) String() string { return r.File + "#" + r.ID }

// FragmentID returns the id after "#" without validating the whole reference.
// It returns false when s has no fragment.
func FragmentID(s string) (string, bool) {
	i := strings.IndexByte(s, '#')
	if i < 0 || i == len(s)-1 {
		return "", false
	}
	return s[i+1:], true
}
