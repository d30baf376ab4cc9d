package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/env"
)

type statsOpts struct {
	latest  bool
	refresh bool
	noCache bool
	workers int
}

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var opts statsOpts

	cmd := &cobra.Command{
		Use:   "stats [path]",
		Short: "Summarize a project's dependencies and tooling",
		Long: `Stats counts the project's dependencies per relation kind and shows whether
linting and formatting are available. With --latest, every dependency is
compared with the newest version on npm, crates.io or the Go module proxy.
jsr dependencies are not looked up.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := c.resolver()
			e, err := r.Resolve(projectArg(args))
			if err != nil {
				return err
			}
			printStats(r, e)

			if !opts.latest {
				return nil
			}
			latest, err := c.latest(cmd.Context(), e.Manifest.Package.Dependencies, opts)
			if err != nil {
				return err
			}
			printNewline()
			printLatest(latest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.latest, "latest", false, "look up the latest registry versions")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached registry data")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent registry lookups (default 20)")

	return cmd
}

func printStats(r *env.Resolver, e *env.Environment) {
	pkg := e.Manifest.Package
	fmt.Println(StyleTitle.Render(fmt.Sprintf("%s@%s", pkg.Name, pkg.Version)) + " " + StyleDim.Render(string(e.Manager)))

	counts := deps.CountByRelation(pkg.Dependencies)
	for _, rel := range deps.Relations {
		if !rel.ValidFor(e.Runtime) {
			continue
		}
		printKeyValue(string(rel), StyleNumber.Render(fmt.Sprintf("%d", counts[rel])))
	}

	for _, tool := range []struct {
		name string
		get  func(*env.Environment) (env.Command, error)
	}{{"lint", r.Lint}, {"format", r.Format}} {
		cmd, err := tool.get(e)
		if err != nil || !cmd.Supported() {
			printKeyValue(tool.name, styleUnsupported.Render("unavailable"))
			continue
		}
		printKeyValue(tool.name, styleCommand.Render(commandString(cmd)))
	}
}

func (c *CLI) latest(ctx context.Context, ds []deps.Dependency, opts statsOpts) ([]deps.Latest, error) {
	backend, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Looking up %d dependencies...", len(ds)))
	spinner.Start()
	prog := newProgress(c.Logger)

	latest := deps.LatestVersions(ctx, ds, c.fetchers(backend), deps.Options{
		Refresh: opts.refresh,
		Workers: opts.workers,
		Logger:  c.Logger.Debugf,
	})
	spinner.Stop()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Looked up %d dependencies", len(ds)))
	return latest, nil
}

func printLatest(latest []deps.Latest) {
	rows := make([][]string, 0, len(latest))
	outdated := 0
	for _, l := range latest {
		status := "up to date"
		switch {
		case l.Err != nil:
			status = "lookup failed"
		case l.Latest == "":
			status = "not checked"
		case l.Outdated():
			status = "outdated"
			outdated++
		}
		rows = append(rows, []string{l.Name, string(l.Relation), l.Version, l.Latest, status})
	}

	t := newTable("Package", "Relation", "Wanted", "Latest", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col != 4 {
				return lipgloss.NewStyle()
			}
			switch rows[row][4] {
			case "outdated":
				return StyleWarning
			case "up to date":
				return StyleSuccess
			}
			return StyleDim
		})
	fmt.Println(t.Render())

	if outdated == 0 {
		printSuccess("Everything is up to date")
		return
	}
	printWarning("%d of %d dependencies are outdated", outdated, len(latest))
}
