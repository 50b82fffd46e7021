// Package alps defines the raw, format-neutral tree of an ALPS profile.
//
// # Overview
//
// An ALPS profile is a tree of descriptors. Each descriptor may carry an id,
// a reference to another descriptor (href), a type, a return target (rt) and
// nested descriptors. This package holds that tree exactly as it appears in
// the source file, before any classification into states and transitions.
//
// Loaders in [github.com/matzehuels/alpsviz/pkg/io] decode JSON, XML or YAML
// into generic values and hand them to [DecodeDocument], so every later stage
// works on the same [Document] regardless of the source format.
//
// # References
//
// Fragment references take two forms:
//
//   - "#id" refers to a descriptor in the same document
//   - "other.json#id" refers to a descriptor in another file
//
// [ParseRef] splits both forms into a [Ref]. A reference without "#" is an
// INVALID_REFERENCE_FORMAT error.
//
// # Shape
//
// The "descriptor" property must be a list. Rather than fail while decoding,
// [Node.Shape] records what was found so the table builder can report
// DESCRIPTOR_IS_NOT_ARRAY with the offending descriptor's id.
package alps
