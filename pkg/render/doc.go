// Package render holds output renderers for fknode. The [depgraph]
// subpackage draws a project's dependency diagram.
//
// [depgraph]: github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/render/depgraph
package render
