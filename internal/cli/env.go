package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/env"
)

// envCommand creates the env command.
func (c *CLI) envCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "env [path]",
		Short: "Show the detected runtime, package manager and commands of a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := c.resolver()
			e, err := r.Resolve(projectArg(args))
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(e)
			}

			printEnvironment(r, e)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the environment as JSON")

	return cmd
}

func printEnvironment(r *env.Resolver, e *env.Environment) {
	pkg := e.Manifest.Package
	fmt.Println(StyleTitle.Render(fmt.Sprintf("%s@%s", pkg.Name, pkg.Version)))
	printKeyValue("Root", e.Root)
	printKeyValue("Runtime", string(e.Runtime))
	printKeyValue("Manager", string(e.Manager))
	printKeyValue("Manifest", e.Manifest.Name)
	if e.Lockfile != nil {
		printKeyValue("Lockfile", e.Lockfile.Name)
	} else {
		printKeyValue("Lockfile", StyleDim.Render("none"))
	}
	printKeyValue("Deps", fmt.Sprintf("%d", len(pkg.Dependencies)))
	if len(e.Workspaces) > 0 {
		printKeyValue("Workspaces", strings.Join(e.Workspaces, ", "))
	}

	lint, _ := r.Lint(e)
	format, _ := r.Format(e)
	printKeyValue("Lint", commandString(lint))
	printKeyValue("Format", commandString(format))

	printNewline()
	fmt.Println(renderCommands(e.Commands))
}
