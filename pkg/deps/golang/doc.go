// Package golang implements the go.mod manifest codec.
//
// go.mod is read with a line scanner rather than golang.org/x/mod so that
// partially valid files (unknown directives, odd spacing) still yield a
// canonical package: unknown directives are skipped, not fatal. Every
// require block in the file is captured, along with single-line require
// directives, and a trailing "// indirect" comment marks an entry as
// [deps.RelationIndirect].
//
// Generating a go.mod from a canonical package is not implemented and fails
// with a NOT_IMPLEMENTED error.
package golang
