// Package crates provides an HTTP client for the crates.io API.
//
//	client := crates.NewClient(backend, 24*time.Hour)
//	crate, err := client.FetchCrate(ctx, "serde", false)
//	fmt.Println(crate.Name, crate.Version)
//
// Version is max_stable_version when crates.io reports one, otherwise
// max_version. The client sends the User-Agent header crates.io requires.
package crates
