package depgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
)

// Options configures diagram generation.
type Options struct {
	// Versions adds the declared requirement to each edge label.
	Versions bool
	// Relations limits the edges drawn; empty means all.
	Relations []deps.Relation
}

var edgeStyle = map[deps.Relation]string{
	deps.RelationDependency: "",
	deps.RelationDev:        "style=dashed",
	deps.RelationPeer:       "style=dotted",
	deps.RelationBuild:      "style=bold",
	deps.RelationIndirect:   "color=grey, fontcolor=grey",
}

func pkgID(p *deps.Package) string { return "pkg:" + p.Name }
func depID(d deps.Dependency) string { return "dep:" + d.Name }

// ToDOT converts packages to Graphviz DOT. Nil packages are skipped.
func ToDOT(pkgs []*deps.Package, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	pkgs = slices.DeleteFunc(slices.Clone(pkgs), func(p *deps.Package) bool { return p == nil })

	for _, p := range pkgs {
		label := p.Name
		if p.Version != "" {
			label += "\n" + p.Version
		}
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue, fontsize=18];\n", pkgID(p), label)
	}

	seen := make(map[string]bool)
	var edges []string
	for _, p := range pkgs {
		for _, d := range p.Dependencies {
			if len(opts.Relations) > 0 && !slices.Contains(opts.Relations, d.Relation) {
				continue
			}
			if !seen[depID(d)] {
				seen[depID(d)] = true
				fmt.Fprintf(&buf, "  %q [label=%q];\n", depID(d), d.Name)
			}
			edges = append(edges, fmt.Sprintf("  %q -> %q [%s];\n", pkgID(p), depID(d), edgeAttrs(d, opts)))
		}
	}

	buf.WriteString("\n")
	if len(pkgs) > 1 {
		for _, m := range pkgs[1:] {
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted, arrowhead=none, label=\"workspace\"];\n", pkgID(pkgs[0]), pkgID(m))
		}
	}
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(d deps.Dependency, opts Options) string {
	var attrs []string
	if opts.Versions && d.Version != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", d.Version))
	}
	if s := edgeStyle[d.Relation]; s != "" {
		attrs = append(attrs, s)
	}
	return strings.Join(attrs, ", ")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from a
// zero origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
