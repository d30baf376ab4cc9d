// Package deps defines the canonical package model shared by every ecosystem
// fknode understands, and the contracts that translate to and from it.
//
// # Overview
//
// Projects come in five runtimes ([RuntimeNode], [RuntimeBun], [RuntimeDeno],
// [RuntimeRust], [RuntimeGo]), each with its own manifest format and
// dependency taxonomy. This package provides:
//
//   - [Package]: the canonical package file (CPF)
//   - [Dependency] and [Relation]: portable dependency roles
//   - [Codec]: the per-ecosystem manifest translator
//   - [DedupeDependencies] and [SpotDependency]: the dependency normalizer
//   - [Merge]: deep merge of additional native fields onto generated manifests
//   - [LatestVersions]: concurrent registry lookups for update checks
//
// # Runtime dispatch
//
// The runtime set is closed. Code that needs per-runtime behavior implements
// [RuntimeVisitor] and calls [VisitRuntime]:
//
//	type codecs struct{}
//
//	func (codecs) Node() deps.Codec   { return javascript.NewCodec(deps.RuntimeNode) }
//	func (codecs) Bun() deps.Codec    { return javascript.NewCodec(deps.RuntimeBun) }
//	func (codecs) Deno() deps.Codec   { return deno.Codec{} }
//	func (codecs) Rust() deps.Codec   { return rust.Codec{} }
//	func (codecs) Golang() deps.Codec { return golang.Codec{} }
//
//	codec, err := deps.VisitRuntime[deps.Codec](rt, codecs{})
//
// Adding a runtime adds a visitor method, so every dispatch site stops
// compiling until it handles the new case.
//
// # Codecs
//
// Each ecosystem has a subpackage:
//
//   - [javascript]: package.json (Node and Bun)
//   - [deno]: deno.json / deno.jsonc
//   - [rust]: Cargo.toml
//   - [golang]: go.mod (parse only; generation is not implemented)
//
// [javascript]: github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps/javascript
// [deno]: github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps/deno
// [rust]: github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps/rust
// [golang]: github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps/golang
package deps
