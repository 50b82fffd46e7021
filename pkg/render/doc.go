// Package render groups the diagram output of alpsviz.
//
// The [diagram] subpackage turns a built profile into Graphviz DOT and
// rasterizes it to SVG or PNG. The [label] subpackage holds the label
// strategies that decide what text nodes and edges carry.
//
//	dot := diagram.ToDOT(p, diagram.Options{Label: label.Title{}})
//	png, err := diagram.RenderPNG(ctx, dot)
//
// [diagram]: github.com/matzehuels/alpsviz/pkg/render/diagram
// [label]: github.com/matzehuels/alpsviz/pkg/render/label
package render
