package cli

import (
	"github.com/spf13/cobra"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/env"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// migrateCommand creates the migrate command.
func (c *CLI) migrateCommand() *cobra.Command {
	var (
		to     string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "migrate [path] --to <manager>",
		Short: "Rewrite a project's manifest for another package manager",
		Long: `Migrate translates the manifest to the canonical package file, saves that
as .fknode-backup.cpf.json, and writes the target manager's manifest. Fields
the canonical file does not model are carried over when both manifests share
a format. Lockfiles are left alone: reinstall with the new manager afterwards.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--to is required")
			}
			target, err := deps.ParseManager(to)
			if err != nil {
				return err
			}

			e, err := c.resolver().Resolve(projectArg(args))
			if err != nil {
				return err
			}
			m, err := env.PlanMigration(e, target)
			if err != nil {
				return err
			}

			for _, w := range m.Warnings {
				printWarning("%s", w)
			}
			if dryRun {
				_, err := cmd.OutOrStdout().Write(m.Native)
				return err
			}

			if err := m.Apply(); err != nil {
				return err
			}
			printSuccess("Migrated %s from %s to %s", e.Manifest.Package.Name, m.From, m.To)
			printFile(m.Backup)
			printFile(m.Target)
			printNextStep("Install with the new manager", string(m.To)+" install")
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "target package manager (npm, pnpm, yarn, bun, deno, cargo)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the generated manifest without writing anything")

	return cmd
}
