package commands

import (
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/campusboard/core/internal/domain/examtable"
	"github.com/campusboard/core/internal/infrastructure/config"
	"github.com/campusboard/core/internal/infrastructure/database"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the CampusBoard API server",
		Long:  "Start the CampusBoard API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands. Only
// meaningful for the postgres storage driver.
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version); requires the postgres storage driver",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewExamCommand creates the exam lookup command
func NewExamCommand() *cobra.Command {
	examCmd := &cobra.Command{
		Use:   "exam",
		Short: "Exam schedule commands",
	}

	examCmd.AddCommand(&cobra.Command{
		Use:   "lookup [course code]",
		Short: "Look up the final exam for a course code",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			lookupExam(args[0])
		},
	})

	return examCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print CampusBoard version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("CampusBoard Core v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	var db *database.DB
	if cfg.Storage.Driver == "postgres" {
		db, err = database.New(cfg.Database)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", "error", err)
		}
		defer db.Close()
	}

	srv, err := server.New(cfg, db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting CampusBoard API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"storage_driver", cfg.Storage.Driver,
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatal("Server failed to start", "error", err)
	}
}

func newMigrator() *migrate.Migrate {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Storage.Driver != "postgres" {
		log.Fatalf("Migrations require the postgres storage driver (current: %s)", cfg.Storage.Driver)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	return m
}

func runMigration(direction string) {
	m := newMigrator()

	var err error
	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", err)
	}

	if err == migrate.ErrNoChange {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
}

func showMigrationVersion() {
	m := newMigrator()

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

func lookupExam(code string) {
	entry, err := examtable.New().Lookup(code)
	if err != nil {
		log.Fatalf("No exam found for %q", code)
	}

	fmt.Printf("%s - %s\n", entry.Code, entry.Title)
	fmt.Printf("  Mode: %s\n", entry.Mode)
	fmt.Printf("  Date: %s\n", entry.Date)
	if entry.Start != "" {
		if entry.End != "" {
			fmt.Printf("  Time: %s-%s\n", entry.Start, entry.End)
		} else {
			fmt.Printf("  Time: %s (open-ended)\n", entry.Start)
		}
	}
	if entry.Campus != "" {
		fmt.Printf("  Campus: %s\n", entry.Campus)
	}
}
