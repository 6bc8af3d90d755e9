package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"leadflare/internal/adapter/memory"
	"leadflare/internal/adapter/postgres"
	"leadflare/internal/core/port"
	"leadflare/internal/db"
)

type store struct {
	campaigns port.CampaignRepository
	leads     port.LeadRepository
	close     func()
}

// openStore returns the repositories of the configured backend. For
// postgres, migrations run first when PSQL_RUN_MIGRATIONS is set.
func (a *app) openStore(ctx context.Context) (*store, error) {
	if !a.cfg.Store.UsePostgres() {
		mem := memory.NewStore()
		a.logger.Info("using in-memory store")
		return &store{campaigns: mem, leads: mem, close: func() {}}, nil
	}

	// Optionally run migrations if configured. We use the Psql sub-config.
	if a.cfg.Psql.RunMigrations {
		if err := db.Migrate(a.cfg.Psql.Addr.String()); err != nil {
			a.logger.Error("migration error", slog.Any("error", err))
		} else {
			a.logger.Info("migrations applied successfully")
		}
	}

	pool, err := db.NewPostgresPool(ctx, a.cfg.Psql)
	if err != nil {
		return nil, err
	}
	return &store{
		campaigns: postgres.NewCampaignRepository(pool),
		leads:     postgres.NewLeadRepository(pool),
		close:     pool.Close,
	}, nil
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.Migrate(a.cfg.Psql.Addr.String()); err != nil {
				return err
			}
			a.logger.Info("migrations applied successfully")
			a.exitCode = 0
			return nil
		},
	}
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty postgres store with demo campaigns and leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.Store.UsePostgres() {
				return errors.New("seed needs STORE_DRIVER=postgres; use STORE_SEED for the memory store")
			}
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.close()

			if err = db.Seed(cmd.Context(), st.campaigns, st.leads); err != nil {
				return err
			}
			a.logger.Info("demo data seeded")
			a.exitCode = 0
			return nil
		},
	}
}
