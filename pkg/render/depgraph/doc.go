// Package depgraph renders a project's canonical package file as a
// node-link dependency diagram.
//
// [ToDOT] emits Graphviz DOT source; [RenderSVG] lays it out in-process
// with go-graphviz:
//
//	dot := depgraph.ToDOT([]*deps.Package{root, member}, depgraph.Options{Versions: true})
//	svg, err := depgraph.RenderSVG(ctx, dot)
//
// The first package is the project root. Later packages are workspace
// members, linked from the root with dotted edges. A dependency shared by
// several packages appears once. Edge styles encode the relation kind:
// dev dashed, peer dotted, build bold, indirect grey.
package depgraph
