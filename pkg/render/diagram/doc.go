// Package diagram renders built ALPS profiles as Graphviz state diagrams.
//
// # Overview
//
// [ToDOT] turns a [profile.Profile] into DOT source. States with inline
// fields become boxes listing those fields; every other state at either end
// of a link becomes a plain node. Transitions become edges, and several
// transitions between the same two states share one edge whose label is a
// table with one row per transition.
//
//	dot := diagram.ToDOT(p, diagram.Options{Label: label.Both{}})
//	svg, err := diagram.RenderSVG(ctx, dot)
//
// # Highlighting
//
// Pass a [profile.Tagged] from [profile.Filter] and a Graphviz color to
// emphasize a subset. Plain nodes and edges whose transition is in the
// subset get the color; everything else keeps the default style. An
// inactive filter highlights nothing.
//
// # Documentation Links
//
// Every node, field row and edge links to a per-descriptor documentation page
// named by [DocPath], for example "semantic.Blog.html" or "safe.goBlog.html".
//
// # Rasterization
//
// [RenderSVG] and [RenderPNG] run Graphviz in process through
// [github.com/goccy/go-graphviz]; no dot binary is needed.
//
// [profile.Profile]: github.com/matzehuels/alpsviz/pkg/profile.Profile
// [profile.Tagged]: github.com/matzehuels/alpsviz/pkg/profile.Tagged
// [profile.Filter]: github.com/matzehuels/alpsviz/pkg/profile.Filter
package diagram
