package profile

import (
	"github.com/matzehuels/alpsviz/pkg/alps"
)

// Kind classifies a descriptor.
type Kind int

const (
	// KindSemantic is a state or a data field.
	KindSemantic Kind = iota
	// KindTransition is a state-changing operation.
	KindTransition
)

// String returns "semantic" or "transition".
func (k Kind) String() string {
	if k == KindTransition {
		return "transition"
	}
	return "semantic"
}

// TransitionType is the ALPS type of a transition.
type TransitionType string

// Transition types.
const (
	Safe       TransitionType = alps.TypeSafe
	Unsafe     TransitionType = alps.TypeUnsafe
	Idempotent TransitionType = alps.TypeIdempotent
)

// IsTransitionType reports whether an ALPS type attribute names a transition.
func IsTransitionType(t string) bool {
	switch TransitionType(t) {
	case Safe, Unsafe, Idempotent:
		return true
	}
	return false
}

// Child is one entry of a descriptor's nested list.
type Child struct {
	ID     string // id of the child descriptor
	Inline bool   // declared inline (true) or referenced by "#id" (false)
}

// Attrs holds what semantic and transition descriptors have in common.
type Attrs struct {
	ID       string
	Def      string
	Title    string
	Doc      alps.Doc
	Tags     []string
	Children []Child

	// Parent is the id of the descriptor this one was declared inside, empty
	// at top level. It is a lookup for documentation links only.
	Parent string
}

// HasTag reports whether the descriptor carries tag.
func (a *Attrs) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Descriptor is either a [*Semantic] or a [*Transition]. The set is closed:
// no other package can implement it.
type Descriptor interface {
	// Base returns the shared attributes.
	Base() *Attrs
	// Kind reports which side of the union this is.
	Kind() Kind
	// TypeName returns the ALPS type: "semantic", "safe", "unsafe" or "idempotent".
	TypeName() string

	sealed()
}

// Semantic is a state or a semantic field.
type Semantic struct {
	Attrs
}

func (s *Semantic) Base() *Attrs     { return &s.Attrs }
func (s *Semantic) Kind() Kind       { return KindSemantic }
func (s *Semantic) TypeName() string { return alps.TypeSemantic }
func (s *Semantic) sealed()          {}

// IsContainer reports whether the state has nested descriptors, which makes
// it render as a node with an inline field list.
func (s *Semantic) IsContainer() bool { return len(s.Children) > 0 }

// Transition is a safe, unsafe or idempotent operation leading to Target.
type Transition struct {
	Attrs
	Type   TransitionType
	Target string // state id from the rt fragment
	Rel    string
}

func (t *Transition) Base() *Attrs     { return &t.Attrs }
func (t *Transition) Kind() Kind       { return KindTransition }
func (t *Transition) TypeName() string { return string(t.Type) }
func (t *Transition) sealed()          {}
