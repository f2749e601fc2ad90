package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/avantpro-admin/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/security"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := a.db()
			if err != nil {
				return err
			}
			if err := postgres.Migrate(db); err != nil {
				return err
			}

			a.logger.Info("database migrated")
			_, _ = fmt.Fprintln(a.out, "migrations applied")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed permissions, the reserved roles and the root user",
		Long: "Seed permission groups, the reserved roles (1 Super Admin, 2 Admin) and the root user.\n" +
			"Existing rows are kept, so running it twice is safe.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.db()
			if err != nil {
				return err
			}
			if migrate {
				if err := postgres.Migrate(db); err != nil {
					return err
				}
			}

			err = postgres.Seed(cmd.Context(), db, security.NewBcryptHasher(bcrypt.DefaultCost), postgres.SeedOptions{
				RootName:     a.cfg.Admin.RootName,
				RootEmail:    a.cfg.Admin.RootEmail,
				RootPassword: a.cfg.Admin.PlaceholderPassword,
				Avatar:       a.cfg.Admin.DefaultAvatar,
			})
			if err != nil {
				return err
			}

			a.logger.Info("database seeded", "root_email", a.cfg.Admin.RootEmail)
			_, _ = fmt.Fprintf(a.out, "seeded; root user is %s\n", a.cfg.Admin.RootEmail)
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "run migrations before seeding")
	return cmd
}

func newHashCmd(a *app) *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
				return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
			}

			hash, err := security.NewBcryptHasher(cost).Hash(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.out, hash)
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}
