// Package javascript translates package.json manifests, used by both the Node
// and Bun runtimes, to and from the canonical package file.
//
// dependencies, devDependencies and peerDependencies map to the dependency,
// devDependency and peerDependency relations; every entry is sourced from the
// npm registry. workspaces may be an array of globs or an object with a
// packages array (the yarn classic form).
package javascript
