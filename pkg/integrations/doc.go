// Package integrations provides HTTP clients for package registries and the
// OSV advisory database.
//
// Each source has its own subpackage:
//
//   - [npm]: latest versions from the npm registry (also used for jsr-less Deno npm: imports)
//   - [crates]: latest versions from crates.io
//   - [goproxy]: latest versions from the Go module proxy
//   - [osv]: advisories from api.osv.dev
//
// The registry clients implement [deps.VersionFetcher]; the osv client
// implements [risk.Source].
//
// # Shared Infrastructure
//
// [Client] wraps an http.Client with default headers, JSON decoding,
// response caching through a [cache.Cache] backend, and retry with
// backoff for network errors, 429 and 5xx responses.
//
// [npm]: github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations/npm
// [crates]: github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations/crates
// [goproxy]: github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations/goproxy
// [osv]: github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations/osv
// [deps.VersionFetcher]: github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps.VersionFetcher
// [risk.Source]: github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/risk.Source
// [cache.Cache]: github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/cache.Cache
package integrations
