// Package cli implementa o comando de manutenção: migrações, seed e hash
// de senhas.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rafabene/avantpro-admin/internal/domain/ports"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/config"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/logging"
	"github.com/rafabene/avantpro-admin/internal/infrastructure/persistence/postgres"
)

// Opener abre o banco a partir da configuração
type Opener func(cfg *config.Config, logger ports.Logger) (*gorm.DB, error)

func openPostgres(cfg *config.Config, logger ports.Logger) (*gorm.DB, error) {
	return postgres.NewDatabaseConnection(&cfg.Database, logger)
}

// Execute roda o CLI e devolve o código de saída
func Execute() int {
	rootCmd := newRootCmd(openPostgres)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// app guarda o que os subcomandos compartilham depois do PersistentPreRunE
type app struct {
	open   Opener
	cfg    *config.Config
	logger ports.Logger
	out    io.Writer
}

func (a *app) db() (*gorm.DB, error) {
	db, err := a.open(a.cfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func newRootCmd(open Opener) *cobra.Command {
	var envFile string
	a := &app{open: open}

	rootCmd := &cobra.Command{
		Use:           "manage",
		Short:         "AvantPro admin maintenance",
		Long:          "Database migrations, seeding and password hashing for the AvantPro admin.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFile(envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(cmd.ErrOrStderr(), logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
			a.out = cmd.OutOrStdout()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment (empty to skip)")

	rootCmd.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a),
		newHashCmd(a),
	)
	return rootCmd
}
