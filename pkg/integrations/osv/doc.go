// Package osv queries the OSV vulnerability database (https://api.osv.dev)
// for advisories affecting a package.
//
// [Client.Advisories] implements risk.Source. Results are memoized in an
// in-process LRU and stored in the shared cache backend, so a batch audit
// over many projects asks OSV about each package once.
package osv
