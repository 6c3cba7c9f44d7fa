package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// InitDB opens the MySQL pool for the run-history store. Returns (nil, nil)
// when no database is configured: persistence is optional and validation
// never depends on it.
func InitDB(ctx context.Context, cfg *AppConfig) (*sql.DB, error) {
	if !cfg.DatabaseEnabled() {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := sql.Open("mysql", cfg.GetDatabaseDSN(true))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctxPing, cancelPing := context.WithTimeout(ctx, 2*time.Second)
	err = db.PingContext(ctxPing)
	cancelPing()
	if err != nil {
		// The database may not exist yet; bootstrap it from a server connection.
		dbRoot, errRoot := sql.Open("mysql", cfg.GetDatabaseDSN(false))
		if errRoot != nil {
			db.Close()
			return nil, fmt.Errorf("open server connection: %w", errRoot)
		}
		createSQL := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` DEFAULT CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", cfg.Database.Name)
		if _, errExec := dbRoot.ExecContext(ctx, createSQL); errExec != nil {
			dbRoot.Close()
			db.Close()
			return nil, fmt.Errorf("create database %s: %w", cfg.Database.Name, errExec)
		}
		dbRoot.Close()
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := autoMigrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate run-history tables: %w", err)
	}
	return db, nil
}

func autoMigrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS validation_runs (
			run_id       CHAR(36) PRIMARY KEY,
			started_at   DATETIME NOT NULL,
			finished_at  DATETIME NOT NULL,
			verdict      VARCHAR(32) NOT NULL,
			tokens       INT NOT NULL,
			projects     INT NOT NULL,
			contracts    INT NOT NULL,
			unique_addrs INT NOT NULL,
			errors       INT NOT NULL,
			warnings     INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS validation_findings (
			id       BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id   CHAR(36) NOT NULL,
			kind     VARCHAR(64) NOT NULL,
			severity VARCHAR(16) NOT NULL,
			subject  VARCHAR(255) NOT NULL,
			message  TEXT NOT NULL,
			INDEX idx_findings_run (run_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
