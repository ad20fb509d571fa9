package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/color-game/palette-api/api"
	"github.com/color-game/palette-api/config"
	"github.com/color-game/palette-api/datastore"
	"github.com/color-game/palette-api/idalloc"
	"github.com/color-game/palette-api/migrations"
	"github.com/color-game/palette-api/palette"
	"github.com/color-game/palette-api/scheduler"
	"github.com/color-game/palette-api/studio"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		workspaceRepo, err := datastore.NewWorkspaceDatabase(store)
		if err != nil {
			return fmt.Errorf("failed to create workspace repository: %w", err)
		}

		dailyPaletteRepo, err := datastore.NewDailyPaletteDatabase(store)
		if err != nil {
			return fmt.Errorf("failed to create daily palette repository: %w", err)
		}

		generator := palette.NewGenerator(log.Default())
		paletteScheduler := scheduler.NewScheduler(dailyPaletteRepo, generator)

		app := &api.Application{
			Config:        *cfg,
			WorkspaceRepo: workspaceRepo,
			DailyPalettes: paletteScheduler,
			Studios: studio.NewRegistry(store, studio.Options{
				IDs:       idalloc.New(),
				Generator: generator,
				Logger:    log.Default(),
			}),
			Generator: generator,
		}

		var onShutdown []func()
		if cfg.DailyPalette {
			paletteScheduler.Start()
			onShutdown = append(onShutdown, paletteScheduler.Stop)
		}

		fmt.Println("Palette API Starting...")
		return app.Serve(http.NewServeMux(), onShutdown...)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cfg.DatabaseType == config.DBTypeMemory {
			fmt.Println("memory store has no schema; nothing to migrate")
			return nil
		}

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		return migrations.RunMigrations(db)
	},
}

// openStore returns the key-value store selected by DB_TYPE, migrated and
// ready to use, with a function releasing it.
func openStore(cfg *config.Config) (datastore.KeyValueRepository, func(), error) {
	if cfg.DatabaseType == config.DBTypeMemory {
		log.Println("Using in-memory store; data is lost on restart")
		return datastore.NewMemoryStore(), func() {}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	fmt.Println("Running database migrations...")
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	store, err := datastore.NewKeyValueDatabase(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create key-value repository: %w", err)
	}
	return store, func() { db.Close() }, nil
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	var connStr string
	switch cfg.DatabaseType {
	case config.DBTypeSQLite:
		connStr = datastore.BuildSQLiteConnStr(cfg.DatabasePath)
	default:
		connStr = datastore.BuildDBConnStr(
			cfg.DatabasePassword,
			cfg.DatabaseUser,
			cfg.DatabaseHost,
			cfg.DatabaseName,
			cfg.SSLMode,
		)
	}

	db, err := datastore.NewDB(cfg.DatabaseType, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
