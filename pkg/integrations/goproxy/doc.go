// Package goproxy provides an HTTP client for the Go module proxy
// (https://proxy.golang.org).
//
//	client := goproxy.NewClient(backend, 24*time.Hour)
//	mod, err := client.FetchModule(ctx, "github.com/spf13/cobra", false)
//	fmt.Println(mod.Path, mod.Version)
//
// The version comes from the @latest endpoint. Module paths are escaped
// per the proxy protocol (uppercase letters become "!" plus lowercase).
package goproxy
