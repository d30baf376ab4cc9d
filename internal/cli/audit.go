package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/audit"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/env"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/risk"
)

// AuditRunner runs an audit argv in dir and returns what it printed on
// stdout and its exit code. A non-zero exit is not an error.
type AuditRunner func(ctx context.Context, dir string, argv []string) (output string, exitCode int, err error)

type auditOpts struct {
	report        string
	manager       string
	exitCode      int
	strict        bool
	noInterrogate bool
	noCache       bool
	asJSON        bool
}

// auditCommand creates the audit command.
func (c *CLI) auditCommand() *cobra.Command {
	var opts auditOpts

	cmd := &cobra.Command{
		Use:   "audit [path...]",
		Short: "Audit projects and score how exposed they are",
		Long: `Audit runs the package manager's audit command in each project, one after
another, and normalizes the result. When vulnerabilities are found, their
advisories are looked up and you are asked a few yes/no questions about how
the affected code is used; the answers give a risk percentage.

A failing project is reported and the batch continues. Use --report to read a
saved audit transcript ("-" for stdin) instead of running anything.`,
		Example: `  fknode audit apps/web apps/admin
  npm audit > audit.txt; fknode audit --report audit.txt --manager npm --exit-code 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				args = []string{"."}
			}
			opts.strict = opts.strict || c.settings().Audit.Strict

			if opts.report != "" {
				if len(args) > 1 {
					return errors.New(errors.ErrCodeInvalidInput, "--report reads one transcript; got %d project paths", len(args))
				}
				return c.auditTranscript(ctx, cmd, args[0], opts)
			}

			prog := newProgress(c.Logger)
			failed := 0
			for i, path := range args {
				if len(args) > 1 {
					fmt.Println(StyleTitle.Render(fmt.Sprintf("[%d/%d] %s", i+1, len(args), path)))
				}
				if err := c.auditProject(ctx, cmd, path, opts); err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					printError("%s: %s", path, errors.UserMessage(err))
					failed++
				}
			}
			if len(args) > 1 {
				prog.done(fmt.Sprintf("Audited %d projects", len(args)))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d projects could not be audited", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.report, "report", "", "read a saved audit transcript instead of running the audit")
	cmd.Flags().StringVar(&opts.manager, "manager", "", "manager that produced --report (default: detected from path)")
	cmd.Flags().IntVar(&opts.exitCode, "exit-code", 0, "exit code of the audit that produced --report")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "blend the score with the report's severity")
	cmd.Flags().BoolVar(&opts.noInterrogate, "no-interrogate", false, "only print the normalized report")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the advisory cache")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the normalized report as JSON and skip the questions")

	return cmd
}

func (c *CLI) auditProject(ctx context.Context, cmd *cobra.Command, path string, opts auditOpts) error {
	e, err := c.resolver().Resolve(path)
	if err != nil {
		return err
	}
	argv, err := e.Commands.Argv(env.OpAudit)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnsupportedOperation, err, "%s audit", e.Manager)
	}

	spinner := newSpinnerWithContext(ctx, "Running "+strings.Join(argv, " "))
	spinner.Start()
	output, code, err := c.Exec(ctx, e.Root, argv)
	spinner.Stop()
	if err != nil {
		return err
	}
	c.Logger.Debug("audit finished", "project", e.Root, "exit", code, "bytes", len(output))

	report, err := audit.Normalize(e.Manager, output, code)
	if err != nil {
		return err
	}
	return c.assess(ctx, cmd, report, opts)
}

func (c *CLI) auditTranscript(ctx context.Context, cmd *cobra.Command, path string, opts auditOpts) error {
	var m deps.Manager
	if opts.manager != "" {
		parsed, err := deps.ParseManager(opts.manager)
		if err != nil {
			return err
		}
		m = parsed
	} else {
		e, err := c.resolver().Resolve(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "--manager not given and none detected")
		}
		m = e.Manager
	}

	var data []byte
	var err error
	if opts.report == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(opts.report)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read report")
	}

	report, err := audit.Normalize(m, string(data), opts.exitCode)
	if err != nil {
		return err
	}
	return c.assess(ctx, cmd, report, opts)
}

// assess prints the report, then interrogates the user about the attack
// vectors its advisories mention and prints the resulting score.
func (c *CLI) assess(ctx context.Context, cmd *cobra.Command, report *audit.Report, opts auditOpts) error {
	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if report.Clean() {
		printSuccess("No vulnerabilities found")
		return nil
	}

	fmt.Println(renderVulnerabilities(report))
	printKeyValue("Risk", severityLabel(report.Risk))
	printKeyValue("Fixes", string(report.ChangeType))
	printKeyValue("Direct", fmt.Sprintf("%d", len(report.Direct)))
	printKeyValue("Transitive", fmt.Sprintf("%d", len(report.Indirect)))

	if opts.noInterrogate {
		return nil
	}

	advisories, err := c.advisories(ctx, report, opts.noCache)
	if err != nil {
		return err
	}

	questions := risk.Interrogate(advisories)
	session := risk.NewSession(questions)
	if len(questions) == 0 {
		printInfo("The advisories mention no known attack vector; nothing to ask")
	} else {
		printNewline()
		ask := c.Ask
		if ask == nil {
			ask = newAsker(ctx, cmd.InOrStdin(), os.Stderr)
		}
		if err := session.Run(ask); err != nil {
			return err
		}
	}

	printScore(session.Assess(report.Risk, opts.strict))
	return nil
}

// advisories returns the looked-up advisories of every vulnerable package,
// plus the titles the audit itself printed.
func (c *CLI) advisories(ctx context.Context, report *audit.Report, noCache bool) ([]risk.Advisory, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	src, err := c.advisorySource(backend)
	if err != nil {
		return nil, err
	}

	names := report.Names()
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Looking up advisories for %d packages...", len(names)))
	spinner.Start()
	lookup, err := risk.LookupAdvisories(ctx, src, names, c.Logger)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	if n := len(lookup.Failures); n > 0 {
		printWarning("Advisory lookup failed for %d of %d packages", n, len(names))
	}

	out := lookup.All(names)
	for _, v := range report.Vulnerable {
		if v.Title != "" {
			out = append(out, risk.Advisory{ID: v.AdvisoryURL, Package: v.Name, Summary: v.Title})
		}
	}
	return out, nil
}

func printScore(a risk.Assessment) {
	printNewline()
	mode := "classic"
	if a.Strict {
		mode = "strict"
	}
	printKeyValue("Answers", fmt.Sprintf("%d risky, %d safe", a.Positives, a.Negatives))
	printKeyValue("Score", StyleNumber.Render(fmt.Sprintf("%.1f%%", a.Percentage()))+" "+StyleDim.Render(mode))
	if a.Strict {
		printDetail("classic score %.1f%%, severity %s", a.Classic(), a.Risk)
	}
}

// execAudit runs argv as a subprocess. Only stdout is parsed; stderr goes to
// the debug log.
func execAudit(ctx context.Context, dir string, argv []string) (string, int, error) {
	if len(argv) == 0 {
		return "", 0, errors.New(errors.ErrCodeInvalidInput, "empty audit command")
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if stderr.Len() > 0 {
		loggerFromContext(ctx).Debug("audit stderr", "output", strings.TrimSpace(stderr.String()))
	}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return stdout.String(), 0, nil
	case ctx.Err() != nil:
		return "", 0, ctx.Err()
	case stderrors.As(err, &exitErr):
		return stdout.String(), exitErr.ExitCode(), nil
	}
	return "", 0, errors.Wrap(errors.ErrCodeInternal, err, "run %s", argv[0])
}
