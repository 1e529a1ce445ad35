package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nmapview/internal/util"
	"nmapview/models"
)

var (
	ErrNotFound = errors.New("record not found")
)

// ExportRepository writes computed reports into SQLite. It never feeds
// anything back into report computation.
type ExportRepository struct {
	db *sql.DB
}

func NewExportRepository(db *sql.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

func (r *ExportRepository) Close() error {
	return r.db.Close()
}

// SaveReport stores the report header, its host records in order, and its
// OS groups in a single transaction.
func (r *ExportRepository) SaveReport(ctx context.Context, source string, report *models.NmapReport) error {
	return util.RetryOnLock(ctx, func() error {
		return r.saveReport(ctx, source, report)
	})
}

func (r *ExportRepository) saveReport(ctx context.Context, source string, report *models.NmapReport) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO scan_reports (id, source, host_count, record_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		report.ID, source, report.HostCount, len(report.Services), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error inserting scan report: %w", err)
	}

	recordStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO host_records (report_id, position, ip, port, service, product, version, state, os)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing host record insert: %w", err)
	}
	defer recordStmt.Close()

	for i, rec := range report.Services {
		_, err = recordStmt.ExecContext(ctx, report.ID, i, rec.IP, rec.Port, rec.Service, rec.Product, rec.Version, rec.State, rec.OS)
		if err != nil {
			return fmt.Errorf("error inserting host record: %w", err)
		}
	}

	groupStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO os_port_groups (report_id, os, ports, port_count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing OS group insert: %w", err)
	}
	defer groupStmt.Close()

	for _, g := range report.OSPatterns {
		if _, err = groupStmt.ExecContext(ctx, report.ID, g.OS, g.Ports, g.PortCount); err != nil {
			return fmt.Errorf("error inserting OS group: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindHostRecords returns a stored report's records in insertion order.
func (r *ExportRepository) FindHostRecords(ctx context.Context, reportID string) ([]models.HostRecord, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM scan_reports WHERE id = ?`, reportID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding scan report: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT ip, port, service, product, version, state, os
	FROM host_records WHERE report_id = ? ORDER BY position`, reportID)
	if err != nil {
		return nil, fmt.Errorf("error querying host records: %w", err)
	}
	defer rows.Close()

	records := []models.HostRecord{}
	for rows.Next() {
		var rec models.HostRecord
		if err := rows.Scan(&rec.IP, &rec.Port, &rec.Service, &rec.Product, &rec.Version, &rec.State, &rec.OS); err != nil {
			return nil, fmt.Errorf("error scanning host record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// FindOSPortGroups returns a stored report's OS groups sorted by OS.
func (r *ExportRepository) FindOSPortGroups(ctx context.Context, reportID string) ([]models.OsPortGroup, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT os, ports, port_count FROM os_port_groups WHERE report_id = ? ORDER BY os`, reportID)
	if err != nil {
		return nil, fmt.Errorf("error querying OS groups: %w", err)
	}
	defer rows.Close()

	groups := []models.OsPortGroup{}
	for rows.Next() {
		var g models.OsPortGroup
		if err := rows.Scan(&g.OS, &g.Ports, &g.PortCount); err != nil {
			return nil, fmt.Errorf("error scanning OS group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
