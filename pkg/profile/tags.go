package profile

import "slices"

// Tagged is a read-only subset of a profile's descriptors selected by tags.
// A nil *Tagged behaves like an inactive filter.
type Tagged struct {
	ids    map[string]bool
	order  []string
	active bool
}

// Filter selects the descriptors of p that carry every tag in and (when and
// is non-empty) or at least one tag in or (when or is non-empty).
//
// With both predicates empty every descriptor is included and the result is
// inactive: renderers treat that as "nothing to highlight".
func Filter(p *Profile, and, or []string) *Tagged {
	t := &Tagged{
		ids:    make(map[string]bool),
		active: len(and) > 0 || len(or) > 0,
	}
	for _, d := range p.Table.Descriptors() {
		a := d.Base()
		if t.active && !matchAll(a, and) && !matchAny(a, or) {
			continue
		}
		t.ids[a.ID] = true
		t.order = append(t.order, a.ID)
	}
	return t
}

func matchAll(a *Attrs, tags []string) bool {
	if len(tags) == 0 {
		return false
	}
	for _, tag := range tags {
		if !a.HasTag(tag) {
			return false
		}
	}
	return true
}

func matchAny(a *Attrs, tags []string) bool {
	return slices.ContainsFunc(tags, a.HasTag)
}

// Active reports whether any predicate was given.
func (t *Tagged) Active() bool { return t != nil && t.active }

// Contains reports whether id is in the subset.
func (t *Tagged) Contains(id string) bool { return t != nil && t.ids[id] }

// Highlights reports whether id should be emphasized: the filter is active
// and id is in the subset.
func (t *Tagged) Highlights(id string) bool { return t.Active() && t.ids[id] }

// IDs returns the selected ids in table order.
func (t *Tagged) IDs() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.order)
}

// Len returns the number of selected descriptors.
func (t *Tagged) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}
