package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gestia/gestia/internal/config"
	"github.com/gestia/gestia/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	dir := flag.String("dir", "migrations", "Directory containing .sql migration files")
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(*dir, "*.sql"))
	if err != nil {
		logger.Fatalw("Failed to list migration files", "error", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		logger.Fatalw("No migration files found", "dir", *dir)
	}

	if *dryRun {
		for _, file := range files {
			sql, err := os.ReadFile(file)
			if err != nil {
				logger.Fatalw("Failed to read migration", "file", file, "error", err)
			}
			fmt.Printf("-- %s\n%s\n", filepath.Base(file), sql)
		}
		return
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		logger.Fatalw("Failed to create schema_migrations table", "error", err)
	}

	for _, file := range files {
		name := filepath.Base(file)

		var applied bool
		err := db.GetContext(ctx, &applied,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE filename = $1)`, name)
		if err != nil {
			logger.Fatalw("Failed to check migration state", "file", name, "error", err)
		}
		if applied {
			logger.Debugw("Skipping applied migration", "file", name)
			continue
		}

		sql, err := os.ReadFile(file)
		if err != nil {
			logger.Fatalw("Failed to read migration", "file", name, "error", err)
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			logger.Fatalw("Failed to begin transaction", "error", err)
		}
		if _, err := tx.ExecContext(ctx, string(sql)); err != nil {
			_ = tx.Rollback()
			logger.Fatalw("Migration failed", "file", name, "error", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (filename) VALUES ($1)`, name); err != nil {
			_ = tx.Rollback()
			logger.Fatalw("Failed to record migration", "file", name, "error", err)
		}
		if err := tx.Commit(); err != nil {
			logger.Fatalw("Failed to commit migration", "file", name, "error", err)
		}

		logger.Infow("Applied migration", "file", name)
	}

	fmt.Println("Migration process completed")
}
