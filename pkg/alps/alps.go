package alps

import (
	"strings"
)

// Descriptor types as they appear in the "type" attribute.
const (
	TypeSemantic   = "semantic"
	TypeSafe       = "safe"
	TypeUnsafe     = "unsafe"
	TypeIdempotent = "idempotent"
)

// Shape records how the "descriptor" property of a node appeared in the source.
type Shape int

const (
	// ShapeAbsent means the node has no "descriptor" property.
	ShapeAbsent Shape = iota
	// ShapeList means "descriptor" was a list (possibly empty).
	ShapeList
	// ShapeInvalid means "descriptor" was present but not a list.
	ShapeInvalid
)

// Doc is the documentation attached to a document or descriptor. ALPS allows
// either a plain string or an object with value, format and href.
type Doc struct {
	Value  string `json:"value,omitempty"`
	Format string `json:"format,omitempty"`
	Href   string `json:"href,omitempty"`
}

// IsZero reports whether the doc carries nothing.
func (d Doc) IsZero() bool { return d == Doc{} }

// Node is one raw descriptor.
type Node struct {
	ID    string
	Href  string
	Type  string
	Rt    string
	Rel   string
	Def   string
	Title string
	Tag   string
	Doc   Doc

	Descriptors []Node
	Shape       Shape
}

// IsReference reports whether the node only points at another descriptor.
func (n Node) IsReference() bool { return n.ID == "" && n.Href != "" }

// Tags splits the space-separated tag attribute.
func (n Node) Tags() []string { return strings.Fields(n.Tag) }

// Clone returns a deep copy of the node and its subtree.
func (n Node) Clone() Node {
	c := n
	if n.Descriptors != nil {
		c.Descriptors = make([]Node, len(n.Descriptors))
		for i, d := range n.Descriptors {
			c.Descriptors[i] = d.Clone()
		}
	}
	return c
}

// Document is a decoded ALPS file.
type Document struct {
	Path        string // absolute source path, empty when decoded from memory
	Title       string
	Doc         Doc
	Schema      string
	Version     string
	Descriptors []Node
}

// Walk visits every node depth-first in declaration order. Returning false
// from fn skips the node's subtree.
func Walk(nodes []Node, fn func(n *Node) bool) {
	for i := range nodes {
		n := &nodes[i]
		if fn(n) {
			Walk(n.Descriptors, fn)
		}
	}
}

// Find returns the first node with the given id anywhere in the document.
func (d *Document) Find(id string) (*Node, bool) {
	var found *Node
	Walk(d.Descriptors, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// IDs returns the set of ids declared anywhere in the document.
func (d *Document) IDs() map[string]bool {
	ids := make(map[string]bool)
	Walk(d.Descriptors, func(n *Node) bool {
		if n.ID != "" {
			ids[n.ID] = true
		}
		return true
	})
	return ids
}
