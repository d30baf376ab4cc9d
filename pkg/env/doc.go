// Package env resolves a project root into an [Environment]: its runtime,
// package manager, parsed manifest, lockfile, workspace members and the
// static command table of its manager.
//
// Detection follows a fixed priority (go.mod, Cargo.toml, deno.json, then
// package.json with lockfile sniffing). Command tables are built once per
// process by [DefaultCommandTables] and passed to [NewResolver]; operations a
// manager cannot perform hold the [Unsupported] sentinel:
//
//	r := env.NewResolver(env.Options{Tables: env.DefaultCommandTables()})
//	e, err := r.Resolve("./my-project")
//	if err != nil {
//	    return err
//	}
//	argv, err := e.Commands.Argv(env.OpAudit) // UNSUPPORTED_OPERATION for bun, deno, cargo, go
package env
