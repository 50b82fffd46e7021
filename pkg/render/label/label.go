// Package label formats node and edge labels for state diagrams.
//
// A [Strategy] turns descriptors into label text. Node labels are plain text;
// the renderer quotes or escapes them for the position they are used in.
// Edge labels are Graphviz HTML-label fragments and are returned already
// escaped, so strategies can add markup such as <u> and <b>.
//
// Three strategies are provided:
//
//   - [ID]: the descriptor id; edges read "goBlog (safe)"
//   - [Title]: the title, falling back to the id
//   - [Both]: "id, title"; edges are emphasized by transition type
//
// Use [ByName] to select one from a flag or config value.
package label

import (
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/alpsviz/pkg/errors"
	"github.com/matzehuels/alpsviz/pkg/profile"
)

// Strategy names accepted by [ByName].
const (
	NameID    = "id"
	NameTitle = "title"
	NameBoth  = "both"
)

// Names lists the strategy names in the order they are documented.
var Names = []string{NameID, NameTitle, NameBoth}

// Strategy formats labels for the diagram renderer.
type Strategy interface {
	// Node returns the plain-text label of a state or field.
	Node(d profile.Descriptor) string
	// Edge returns the HTML-label fragment for one transition.
	Edge(t *profile.Transition) string
}

// ByName returns the strategy called name. Unknown names are INVALID_INPUT.
func ByName(name string) (Strategy, error) {
	switch name {
	case NameID:
		return ID{}, nil
	case NameTitle:
		return Title{}, nil
	case NameBoth:
		return Both{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown label strategy %q (want %s)", name, strings.Join(Names, ", "))
}

// ID labels everything with its id.
type ID struct{}

func (ID) Node(d profile.Descriptor) string { return d.Base().ID }

func (ID) Edge(t *profile.Transition) string {
	return html.EscapeString(fmt.Sprintf("%s (%s)", t.ID, t.Type))
}

// Title labels everything with its title, or its id when untitled.
type Title struct{}

func (Title) Node(d profile.Descriptor) string { return titleOrID(d.Base()) }

// Edge keeps multi-word titles on one line.
func (Title) Edge(t *profile.Transition) string {
	return strings.ReplaceAll(html.EscapeString(titleOrID(&t.Attrs)), " ", "&#160;")
}

// Both labels with "id, title" and emphasizes edges by transition type:
// idempotent underlined, unsafe bold and underlined, safe plain.
type Both struct{}

func (Both) Node(d profile.Descriptor) string { return combined(d.Base()) }

func (Both) Edge(t *profile.Transition) string {
	s := html.EscapeString(combined(&t.Attrs))
	switch t.Type {
	case profile.Idempotent:
		return "<u>" + s + "</u>"
	case profile.Unsafe:
		return "<b><u>" + s + "</u></b>"
	default:
		return s
	}
}

func titleOrID(a *profile.Attrs) string {
	if a.Title != "" {
		return a.Title
	}
	return a.ID
}

func combined(a *profile.Attrs) string {
	if a.Title == "" {
		return a.ID
	}
	return a.ID + ", " + a.Title
}
