package diagram

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/alpsviz/pkg/profile"
	"github.com/matzehuels/alpsviz/pkg/render/label"
)

// DefaultDocExt is the documentation page extension used when none is set.
const DefaultDocExt = "html"

// Options configures diagram generation.
type Options struct {
	// Label formats node and edge labels. Defaults to [label.ID].
	Label label.Strategy

	// Tagged is the highlight subset. Nil or inactive highlights nothing.
	Tagged *profile.Tagged

	// Color is the Graphviz color applied to highlighted nodes and edges.
	Color string

	// DocExt is the extension of documentation page links. Defaults to
	// [DefaultDocExt].
	DocExt string
}

func (o Options) withDefaults() Options {
	if o.Label == nil {
		o.Label = label.ID{}
	}
	if o.DocExt == "" {
		o.DocExt = DefaultDocExt
	}
	return o
}

// DocPath returns the documentation page of a descriptor: "<type>.<id>.<ext>".
func DocPath(typeName, id, ext string) string {
	if ext == "" {
		ext = DefaultDocExt
	}
	return typeName + "." + id + "." + ext
}

// pair is an edge grouping key. A struct key keeps ("A", "BC") and ("AB", "C")
// apart.
type pair struct {
	from, to string
}

// ToDOT converts a profile to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(p *profile.Profile, opts Options) string {
	opts = opts.withDefaults()
	r := &renderer{p: p, opts: opts}

	var buf bytes.Buffer
	r.header(&buf)

	pending := p.Links.States()
	rendered := make(map[string]bool)
	for _, d := range p.Table.Descriptors() {
		s, ok := d.(*profile.Semantic)
		if !ok || !s.IsContainer() {
			continue
		}
		r.container(&buf, s)
		rendered[s.ID] = true
	}
	for _, id := range pending {
		if !rendered[id] {
			r.plain(&buf, id)
		}
	}

	buf.WriteString("\n")
	r.edges(&buf)

	buf.WriteString("}\n")
	return buf.String()
}

type renderer struct {
	p    *profile.Profile
	opts Options
}

func (r *renderer) header(buf *bytes.Buffer) {
	title := r.p.Title
	if title == "" {
		title = "ALPS"
	}
	buf.WriteString("digraph application_state_diagram {\n")
	fmt.Fprintf(buf, "  graph [labelloc=\"t\", fontname=\"Helvetica\", label=%q];\n", title)
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=11];\n")
	buf.WriteString("\n")
}

// container renders a state with its inline field list as an HTML table.
func (r *renderer) container(buf *bytes.Buffer, s *profile.Semantic) {
	var t strings.Builder
	t.WriteString(`<table border="0" cellborder="0" cellspacing="0" cellpadding="4">`)
	fmt.Fprintf(&t, `<tr><td><b>%s</b></td></tr>`, html.EscapeString(r.opts.Label.Node(s)))
	for _, c := range s.Children {
		field, ok := r.p.Table.Semantic(c.ID)
		if !ok {
			continue
		}
		fmt.Fprintf(&t, `<tr><td align="left" href="%s">%s</td></tr>`,
			html.EscapeString(r.docPath(field)), html.EscapeString(r.opts.Label.Node(field)))
	}
	t.WriteString(`</table>`)

	attrs := []string{
		"label=<" + t.String() + ">",
		fmt.Sprintf("URL=%q", r.docPath(s)),
		`target="_parent"`,
		"margin=0.02",
	}
	fmt.Fprintf(buf, "  %q [%s];\n", s.ID, strings.Join(attrs, ", "))
}

// plain renders a state that has no inline fields, or that is referenced but
// not declared.
func (r *renderer) plain(buf *bytes.Buffer, id string) {
	text, doc := id, DocPath("semantic", id, r.opts.DocExt)
	if d, ok := r.p.Table.Get(id); ok {
		text, doc = r.opts.Label.Node(d), r.docPath(d)
	}

	attrs := []string{
		fmt.Sprintf("label=%q", text),
		fmt.Sprintf("URL=%q", doc),
		`target="_parent"`,
	}
	if r.highlights(id) {
		attrs = append(attrs, fmt.Sprintf("color=%q", r.opts.Color))
	}
	fmt.Fprintf(buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
}

func (r *renderer) edges(buf *bytes.Buffer) {
	var order []pair
	groups := make(map[pair][]profile.Link)
	for _, l := range r.p.Links.All() {
		k := pair{l.From, l.To}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], l)
	}

	for _, k := range order {
		links := groups[k]
		var attrs []string
		if len(links) == 1 {
			tr := links[0].Transition
			attrs = append(attrs,
				"label=<"+r.opts.Label.Edge(tr)+">",
				fmt.Sprintf("URL=%q", r.docPath(tr)),
				`target="_parent"`,
			)
		} else {
			attrs = append(attrs, "label=<"+r.edgeTable(links)+">")
		}
		if r.anyHighlighted(links) {
			attrs = append(attrs, fmt.Sprintf("color=%q", r.opts.Color), fmt.Sprintf("fontcolor=%q", r.opts.Color))
		}
		fmt.Fprintf(buf, "  %q -> %q [%s];\n", k.from, k.to, strings.Join(attrs, ", "))
	}
}

// edgeTable lists every transition between one pair of states, one per row.
func (r *renderer) edgeTable(links []profile.Link) string {
	var t strings.Builder
	t.WriteString(`<table border="0" cellborder="0" cellspacing="0" cellpadding="2">`)
	for _, l := range links {
		fmt.Fprintf(&t, `<tr><td href="%s">%s</td></tr>`,
			html.EscapeString(r.docPath(l.Transition)), r.opts.Label.Edge(l.Transition))
	}
	t.WriteString(`</table>`)
	return t.String()
}

func (r *renderer) docPath(d profile.Descriptor) string {
	return DocPath(d.TypeName(), d.Base().ID, r.opts.DocExt)
}

func (r *renderer) highlights(id string) bool {
	return r.opts.Color != "" && r.opts.Tagged.Highlights(id)
}

func (r *renderer) anyHighlighted(links []profile.Link) bool {
	for _, l := range links {
		if r.highlights(l.Transition.ID) {
			return true
		}
	}
	return false
}
