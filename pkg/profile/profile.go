package profile

import (
	"maps"
	"slices"

	"github.com/matzehuels/alpsviz/pkg/alps"
)

// Profile is a fully built ALPS profile.
type Profile struct {
	Title  string
	Doc    alps.Doc
	Schema string

	Table *Table
	Links *Links

	// Tags maps each tag to the ids carrying it, in table order.
	Tags map[string][]string
}

// Build runs the table and link passes over nodes, taking document metadata
// from doc. nodes is normally the merged working set of a resolver run.
func Build(doc *alps.Document, nodes []alps.Node) (*Profile, error) {
	table, err := BuildTable(nodes)
	if err != nil {
		return nil, err
	}
	links, err := BuildLinks(table, nodes)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Table: table,
		Links: links,
		Tags:  make(map[string][]string),
	}
	if doc != nil {
		p.Title = doc.Title
		p.Doc = doc.Doc
		p.Schema = doc.Schema
	}
	for _, d := range table.Descriptors() {
		for _, tag := range d.Base().Tags {
			p.Tags[tag] = append(p.Tags[tag], d.Base().ID)
		}
	}
	return p, nil
}

// Parent returns the id of the descriptor id was declared inside.
func (p *Profile) Parent(id string) (string, bool) {
	d, ok := p.Table.Get(id)
	if !ok || d.Base().Parent == "" {
		return "", false
	}
	return d.Base().Parent, true
}

// TagNames returns every tag used in the profile, sorted.
func (p *Profile) TagNames() []string {
	return slices.Sorted(maps.Keys(p.Tags))
}
