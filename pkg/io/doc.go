// Package io loads ALPS profiles from disk and exports built profiles.
//
// # Import
//
// [Load] reads a profile file and picks a decoder from its extension:
//
//   - .json: the JSON form, {"alps": {"descriptor": [...]}}
//   - .xml: the XML form, <alps><descriptor .../></alps>
//   - .yaml / .yml: the JSON form written as YAML
//
// All three decode into the same [alps.Document]. [Read] does the same for
// an arbitrary io.Reader when the format is known.
//
//	doc, err := io.Load("profile.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Errors carry codes from [github.com/matzehuels/alpsviz/pkg/errors]:
// FILE_NOT_READABLE when the file cannot be read, MALFORMED_INPUT when the
// text is not valid JSON/XML/YAML, INVALID_DOCUMENT when the structure lacks
// the alps root or its descriptor list.
//
// # Export
//
// [WriteJSON] and [ExportJSON] serialize a built profile (descriptor table,
// links and tag index) as JSON for external tools:
//
//	err := io.ExportJSON(p, "profile.graph.json")
//
// The export is a flattened view: every descriptor appears once, keyed by id,
// and links are listed in the order the link builder produced them.
//
// [alps.Document]: github.com/matzehuels/alpsviz/pkg/alps.Document
package io
