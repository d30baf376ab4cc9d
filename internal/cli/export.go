package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/env"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/render/depgraph"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

type exportOpts struct {
	format    string
	output    string
	versions  bool
	relations []string
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Print a project's canonical package file",
		Long: `Export translates the project's manifest to the canonical package file (CPF)
and prints it as JSON or YAML, or renders its dependency graph as DOT or SVG.
Workspace members are included in graph formats.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.export(cmd.Context(), projectArg(args), opts)
			if err != nil {
				return err
			}
			if opts.output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Exported %s", opts.format)
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatJSON, "output format: json, yaml, dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&opts.versions, "versions", true, "label graph edges with version requirements")
	cmd.Flags().StringSliceVar(&opts.relations, "relation", nil, "only graph these relations (dependency, devDependency, ...)")

	return cmd
}

func (c *CLI) export(ctx context.Context, path string, opts exportOpts) ([]byte, error) {
	r := c.resolver()
	e, err := r.Resolve(path)
	if err != nil {
		return nil, err
	}
	pkg := e.Manifest.Package

	format := strings.ToLower(opts.format)
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(pkg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(pkg)
	case FormatDOT, FormatSVG:
		relations, err := parseRelations(opts.relations)
		if err != nil {
			return nil, err
		}
		dot := depgraph.ToDOT(c.workspacePackages(ctx, r, e), depgraph.Options{Versions: opts.versions, Relations: relations})
		if format == FormatDOT {
			return []byte(dot), nil
		}
		return depgraph.RenderSVG(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown export format %q", opts.format)
}

// workspacePackages returns the root package followed by every workspace
// member that resolves. Members that fail are logged and skipped.
func (c *CLI) workspacePackages(ctx context.Context, r *env.Resolver, e *env.Environment) []*deps.Package {
	logger := loggerFromContext(ctx)
	pkgs := []*deps.Package{e.Manifest.Package}
	for _, dir := range e.Workspaces {
		member, err := r.Resolve(dir)
		if err != nil {
			logger.Warn("skipping workspace member", "dir", dir, "err", errors.UserMessage(err))
			continue
		}
		pkgs = append(pkgs, member.Manifest.Package)
	}
	return pkgs
}

func parseRelations(names []string) ([]deps.Relation, error) {
	var out []deps.Relation
	for _, n := range names {
		rel := deps.Relation(strings.TrimSpace(n))
		if !slices.Contains(deps.Relations, rel) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown relation %q", n)
		}
		out = append(out, rel)
	}
	return out, nil
}
