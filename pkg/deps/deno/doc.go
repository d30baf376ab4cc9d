// Package deno translates deno.json and deno.jsonc manifests to and from the
// canonical package file.
//
// Only import-map entries that name a registry package are dependencies:
//
//	"imports": {
//	    "@std/path": "jsr:@std/path@^1.0.0",   // kept, jsr
//	    "chalk": "npm:chalk@5",                // kept, npm
//	    "oak": "https://deno.land/x/oak/mod.ts", // skipped
//	    "@/": "./src/"                         // skipped
//	}
//
// URL and local path imports are not dependencies and are skipped silently.
package deno
