package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/alpsviz/pkg/alps"
	"github.com/matzehuels/alpsviz/pkg/profile"
)

type profileJSON struct {
	Title       string              `json:"title,omitempty"`
	Doc         *alps.Doc           `json:"doc,omitempty"`
	Schema      string              `json:"schema,omitempty"`
	Descriptors []descriptorJSON    `json:"descriptors"`
	Links       []linkJSON          `json:"links"`
	Tags        map[string][]string `json:"tags,omitempty"`
}

type descriptorJSON struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`
	Type     string    `json:"type"`
	Target   string    `json:"target,omitempty"`
	Rel      string    `json:"rel,omitempty"`
	Title    string    `json:"title,omitempty"`
	Def      string    `json:"def,omitempty"`
	Doc      *alps.Doc `json:"doc,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	Parent   string    `json:"parent,omitempty"`
	Children []string  `json:"children,omitempty"`
}

type linkJSON struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Transition string `json:"transition"`
	Type       string `json:"type"`
}

// WriteJSON encodes a built profile as JSON and writes it to w.
// The output lists every descriptor in table order with its classification
// and parent, followed by the links of the state diagram.
func WriteJSON(p *profile.Profile, w io.Writer) error {
	out := profileJSON{
		Title:       p.Title,
		Doc:         docPtr(p.Doc),
		Schema:      p.Schema,
		Descriptors: make([]descriptorJSON, 0, p.Table.Len()),
		Links:       make([]linkJSON, 0, p.Links.Len()),
		Tags:        p.Tags,
	}

	for _, d := range p.Table.Descriptors() {
		a := d.Base()
		dj := descriptorJSON{
			ID:     a.ID,
			Kind:   d.Kind().String(),
			Type:   d.TypeName(),
			Title:  a.Title,
			Def:    a.Def,
			Doc:    docPtr(a.Doc),
			Tags:   a.Tags,
			Parent: a.Parent,
		}
		if tr, ok := d.(*profile.Transition); ok {
			dj.Target = tr.Target
			dj.Rel = tr.Rel
		}
		for _, c := range a.Children {
			dj.Children = append(dj.Children, c.ID)
		}
		out.Descriptors = append(out.Descriptors, dj)
	}
	for _, l := range p.Links.All() {
		out.Links = append(out.Links, linkJSON{
			From:       l.From,
			To:         l.To,
			Transition: l.Transition.ID,
			Type:       string(l.Transition.Type),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a profile to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(p *profile.Profile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(p, f)
}

func docPtr(d alps.Doc) *alps.Doc {
	if d.IsZero() {
		return nil
	}
	return &d
}
