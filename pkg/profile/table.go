package profile

import (
	"fmt"
	"slices"

	"github.com/matzehuels/alpsviz/pkg/alps"
	"github.com/matzehuels/alpsviz/pkg/errors"
)

// Table maps descriptor ids to descriptors, remembering declaration order.
// The zero value is not usable; use [NewTable].
type Table struct {
	order []string
	byID  map[string]Descriptor
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{byID: make(map[string]Descriptor)}
}

// Set stores d under its id. A later Set for the same id replaces the
// descriptor but keeps the original position.
func (t *Table) Set(d Descriptor) {
	id := d.Base().ID
	if _, exists := t.byID[id]; !exists {
		t.order = append(t.order, id)
	}
	t.byID[id] = d
}

// Get returns the descriptor with the given id.
func (t *Table) Get(id string) (Descriptor, bool) {
	d, ok := t.byID[id]
	return d, ok
}

// Semantic returns the descriptor with the given id if it is semantic.
func (t *Table) Semantic(id string) (*Semantic, bool) {
	s, ok := t.byID[id].(*Semantic)
	return s, ok
}

// Transition returns the descriptor with the given id if it is a transition.
func (t *Table) Transition(id string) (*Transition, bool) {
	tr, ok := t.byID[id].(*Transition)
	return tr, ok
}

// IDs returns every id once, in declaration order.
func (t *Table) IDs() []string { return slices.Clone(t.order) }

// Descriptors returns every descriptor in declaration order.
func (t *Table) Descriptors() []Descriptor {
	out := make([]Descriptor, len(t.order))
	for i, id := range t.order {
		out[i] = t.byID[id]
	}
	return out
}

// Len returns the number of descriptors.
func (t *Table) Len() int { return len(t.order) }

// BuildTable classifies every raw node and flattens nested descriptors into
// one table.
//
// It fails with INVALID_DESCRIPTOR for a node with neither id nor href or
// with an unknown type, DESCRIPTOR_IS_NOT_ARRAY when a descriptor property is
// not a list, RT_MISSING for a transition without a "#"-qualified rt, and
// INVALID_REFERENCE_FORMAT for a reference without "#".
func BuildTable(nodes []alps.Node) (*Table, error) {
	t := NewTable()
	for i := range nodes {
		if _, err := t.register(&nodes[i], ""); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// register adds n and its inline subtree, returning the child entry its
// parent should record.
func (t *Table) register(n *alps.Node, parent string) (Child, error) {
	if n.ID == "" && n.Href == "" {
		return Child{}, errors.New(errors.ErrCodeInvalidDescriptor, "descriptor%s has neither id nor href", within(parent))
	}
	if n.Shape == alps.ShapeInvalid {
		return Child{}, errors.New(errors.ErrCodeDescriptorIsNotArray, "descriptor %q: \"descriptor\" must be a list", n.ID)
	}
	if n.IsReference() {
		ref, err := alps.ParseRef(n.Href)
		if err != nil {
			return Child{}, err
		}
		return Child{ID: ref.ID}, nil
	}

	d, err := classify(n, parent)
	if err != nil {
		return Child{}, err
	}
	t.Set(d)

	attrs := d.Base()
	for i := range n.Descriptors {
		c, err := t.register(&n.Descriptors[i], n.ID)
		if err != nil {
			return Child{}, err
		}
		attrs.Children = append(attrs.Children, c)
	}
	return Child{ID: n.ID, Inline: true}, nil
}

// classify is the single place a raw node becomes a Semantic or Transition.
func classify(n *alps.Node, parent string) (Descriptor, error) {
	attrs := Attrs{
		ID:     n.ID,
		Def:    n.Def,
		Title:  n.Title,
		Doc:    n.Doc,
		Tags:   n.Tags(),
		Parent: parent,
	}

	switch {
	case n.Type == "" || n.Type == alps.TypeSemantic:
		return &Semantic{Attrs: attrs}, nil
	case IsTransitionType(n.Type):
		target, ok := alps.FragmentID(n.Rt)
		if !ok {
			return nil, errors.New(errors.ErrCodeRtMissing, "transition %q needs an rt of the form \"#id\", got %q", n.ID, n.Rt)
		}
		return &Transition{
			Attrs:  attrs,
			Type:   TransitionType(n.Type),
			Target: target,
			Rel:    n.Rel,
		}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidDescriptor, "descriptor %q has unknown type %q", n.ID, n.Type)
	}
}

func within(parent string) string {
	if parent == "" {
		return ""
	}
	return fmt.Sprintf(" inside %q", parent)
}
