// migrate aplica las migraciones SQL embebidas en el binario sobre la base configurada
// (mismas variables DB_* / DATABASE_URL que la API).
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate status
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Cotizador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Cotizador-api/pkg/config"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

var timeout time.Duration

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Migraciones del esquema de Cotizador",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica las migraciones pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *postgres.Migrator, log *logger.Logger) error {
			applied, err := m.Up(ctx)
			for _, mig := range applied {
				log.Info().Int("version", mig.Version).Str("name", mig.Name).Msg("migración aplicada")
			}
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				log.Info().Msg("esquema al día")
			}
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Muestra la versión aplicada y las migraciones pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *postgres.Migrator, _ *logger.Logger) error {
			st, err := m.Status(ctx)
			if err != nil {
				return err
			}
			cmd.Printf("versión actual: %d\n", st.CurrentVersion)
			if len(st.Pending) == 0 {
				cmd.Println("sin migraciones pendientes")
				return nil
			}
			for _, mig := range st.Pending {
				cmd.Printf("pendiente: %04d_%s\n", mig.Version, mig.Name)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "tiempo máximo de la operación")
	rootCmd.AddCommand(upCmd, statusCmd)
}

func withMigrator(parent context.Context, fn func(context.Context, *postgres.Migrator, *logger.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "cotizador-migrate"})

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	m, err := postgres.NewMigrator(pool)
	if err != nil {
		return err
	}
	return fn(ctx, m, log)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
