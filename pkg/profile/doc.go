// Package profile builds the descriptor table and transition graph of a
// resolved ALPS profile.
//
// # Overview
//
// A resolved profile (see [github.com/matzehuels/alpsviz/pkg/resolve]) is
// still a raw tree. This package turns it into:
//
//   - a [Table]: every descriptor by id, classified once into the closed
//     union [*Semantic] | [*Transition]
//   - a [Links] set: one [Link] per (state, target, transition) triple
//   - a tag index and a parent lookup for documentation cross-links
//
// [Build] runs both passes and returns a [Profile]:
//
//	p, err := profile.Build(res.Document, res.Descriptors)
//	for _, l := range p.Links.All() {
//	    fmt.Println(l.From, "->", l.To, "via", l.Transition.ID)
//	}
//
// # Descriptor Table
//
// [BuildTable] walks the raw tree and flattens nested descriptors into the
// same table. Descriptors without a type are semantic; safe, unsafe and
// idempotent descriptors are transitions and must carry an rt of the form
// "#id". Pure references (href without id) are not table entries; they are
// recorded as fragment [Child] entries of their parent.
//
// When the same id is declared twice the later declaration wins, keeping the
// position of the first.
//
// # Links
//
// [BuildLinks] walks the raw tree a second time. Every transition that is a
// child of a semantic descriptor, inline or by "#id", yields a link from that
// semantic id to the transition's target. Links are keyed by
// "from->to:transition", so adding the same triple twice is a no-op while two
// transitions between the same states stay distinct.
//
// # Tags
//
// [Filter] selects descriptors by AND/OR tag predicates. The result is a
// read-only [Tagged] view used to highlight part of the diagram; the
// profile itself is never modified.
//
// # Concurrency
//
// Building is single threaded. A built Profile is not modified afterwards and
// may be read from several goroutines.
package profile
