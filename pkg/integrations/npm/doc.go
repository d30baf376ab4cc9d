// Package npm provides an HTTP client for the npm registry API
// (https://registry.npmjs.org).
//
// # Usage
//
//	client := npm.NewClient(backend, 24*time.Hour)
//	pkg, err := client.FetchPackage(ctx, "express", false)
//	fmt.Println(pkg.Name, pkg.Latest)
//
// The latest version is the one tagged "latest" in dist-tags. [Client]
// implements deps.VersionFetcher for the npm registry.
//
// # Caching
//
// Responses are cached in the backend under the "npm" namespace. Pass
// refresh=true to bypass the cache.
package npm
