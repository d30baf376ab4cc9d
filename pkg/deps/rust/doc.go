// Package rust translates Cargo.toml manifests to and from the canonical
// package file.
//
// The [dependencies], [dev-dependencies] and [build-dependencies] tables map
// to the dependency, devDependency and buildDependency relations. A
// dependency value may be a bare version string or an inline table:
//
//	[dependencies]
//	serde = "1.0"
//	tokio = { version = "1", features = ["full"] }
//	local = { path = "../local" }
//
// Entries keep their order in the file. Tables without a version (path and
// git dependencies) are recorded with the wildcard version "*".
package rust
