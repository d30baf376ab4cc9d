// Package httputil provides retry helpers for registry and advisory
// clients.
//
// Wrap transient failures (network errors, 429 and 5xx responses) in
// [RetryableError], setting After from the response's Retry-After header
// via [RetryAfter]. [Retry] re-runs the operation under a [Policy] and
// returns any other error immediately:
//
//	err := httputil.Retry(ctx, httputil.Policy{Attempts: 4, Delay: time.Second}, func() error {
//	    return fetch(ctx)
//	})
package httputil
