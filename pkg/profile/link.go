package profile

import (
	"github.com/matzehuels/alpsviz/pkg/alps"
	"github.com/matzehuels/alpsviz/pkg/errors"
)

// Link is one arrow of the state diagram: Transition leads from state From
// to state To.
type Link struct {
	From       string
	To         string
	Transition *Transition
}

// Key identifies the link. Distinct transitions between the same pair of
// states have distinct keys.
func (l Link) Key() string {
	return l.From + "->" + l.To + ":" + l.Transition.ID
}

// Links is an insertion-ordered set of links. The zero value is not usable;
// use [NewLinks].
type Links struct {
	items []Link
	keys  map[string]bool
}

// NewLinks creates an empty link set.
func NewLinks() *Links {
	return &Links{keys: make(map[string]bool)}
}

// Add inserts l unless a link with the same key is already present. It
// reports whether l was added.
func (ls *Links) Add(l Link) bool {
	k := l.Key()
	if ls.keys[k] {
		return false
	}
	ls.keys[k] = true
	ls.items = append(ls.items, l)
	return true
}

// All returns the links in insertion order. The slice must not be modified.
func (ls *Links) All() []Link { return ls.items }

// Len returns the number of links.
func (ls *Links) Len() int { return len(ls.items) }

// States returns every state that is the source or target of a link, each
// once, in order of first appearance.
func (ls *Links) States() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, l := range ls.items {
		add(l.From)
		add(l.To)
	}
	return out
}

// BuildLinks walks the raw tree and emits a link for every transition that
// is a child of a semantic descriptor.
//
// Transition children may be inline or "#id" references; both are looked up
// in table, which must have been built from the same nodes. Semantic
// children are walked with themselves as the enclosing state. A reference to
// an id missing from table is DESCRIPTOR_NOT_FOUND.
func BuildLinks(table *Table, nodes []alps.Node) (*Links, error) {
	ls := NewLinks()
	if err := walkLinks(table, ls, nodes); err != nil {
		return nil, err
	}
	return ls, nil
}

func walkLinks(table *Table, ls *Links, nodes []alps.Node) error {
	for i := range nodes {
		n := &nodes[i]
		if n.ID != "" && (n.Type == "" || n.Type == alps.TypeSemantic) {
			if err := linkChildren(table, ls, n); err != nil {
				return err
			}
		}
		if err := walkLinks(table, ls, n.Descriptors); err != nil {
			return err
		}
	}
	return nil
}

func linkChildren(table *Table, ls *Links, state *alps.Node) error {
	for i := range state.Descriptors {
		c := &state.Descriptors[i]

		var id string
		switch {
		case c.IsReference():
			ref, err := alps.ParseRef(c.Href)
			if err != nil {
				return err
			}
			id = ref.ID
		case IsTransitionType(c.Type):
			id = c.ID
		default:
			continue
		}

		d, ok := table.Get(id)
		if !ok {
			return errors.New(errors.ErrCodeDescriptorNotFound, "descriptor %q referenced from %q not found", id, state.ID)
		}
		if tr, ok := d.(*Transition); ok {
			ls.Add(Link{From: state.ID, To: tr.Target, Transition: tr})
		}
	}
	return nil
}
