package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"nmapview/internal/logging"
)

// ConnectToSQLite opens the export database, creating its directory if needed.
func ConnectToSQLite(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for SQLite: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	logging.Debugf("Connected to SQLite database %s", dbPath)
	return db, nil
}

// InitializeSchema creates the export tables if they don't exist.
func InitializeSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS scan_reports (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		host_count INTEGER NOT NULL,
		record_count INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create scan_reports table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS host_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		ip TEXT NOT NULL,
		port TEXT NOT NULL,
		service TEXT NOT NULL,
		product TEXT NOT NULL,
		version TEXT NOT NULL,
		state TEXT NOT NULL,
		os TEXT NOT NULL,
		FOREIGN KEY (report_id) REFERENCES scan_reports(id)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create host_records table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS os_port_groups (
		report_id TEXT NOT NULL,
		os TEXT NOT NULL,
		ports TEXT NOT NULL,
		port_count INTEGER NOT NULL,
		PRIMARY KEY (report_id, os),
		FOREIGN KEY (report_id) REFERENCES scan_reports(id)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create os_port_groups table: %w", err)
	}

	logging.Debugf("Database schema initialized successfully")
	return nil
}
