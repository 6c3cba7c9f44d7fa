package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Storage interface {
	Save(report *Report, content string) (string, error)
}

// FileStorage writes the rendered report under OutputDir with an atomic
// temp-file rename.
type FileStorage struct {
	OutputDir string
}

func NewFileStorage(outputDir string) *FileStorage {
	return &FileStorage{OutputDir: outputDir}
}

func sanitizeFilenameComponent(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	out := strings.Trim(b.String(), "._-")
	if out == "" {
		return "unknown"
	}
	return out
}

func (s *FileStorage) Save(report *Report, content string) (string, error) {
	if s.OutputDir == "" {
		s.OutputDir = "reports"
	}
	if err := os.MkdirAll(s.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	runID := sanitizeFilenameComponent(report.RunID)
	filename := fmt.Sprintf("validation_%s_%d.md", runID, time.Now().UnixNano())
	reportPath := filepath.Join(s.OutputDir, filename)

	tmpFile, err := os.CreateTemp(s.OutputDir, filename+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp report file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.WriteString(content); err != nil {
		_ = tmpFile.Close()
		return "", fmt.Errorf("failed to write temp report file: %w", err)
	}
	if err := tmpFile.Chmod(0644); err != nil {
		_ = tmpFile.Close()
		return "", fmt.Errorf("failed to chmod temp report file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp report file: %w", err)
	}
	if err := os.Rename(tmpPath, reportPath); err != nil {
		return "", fmt.Errorf("failed to finalize report file: %w", err)
	}
	return reportPath, nil
}

// DBStorage persists run summaries and their findings into the run-history
// tables. It is inert when no database was configured.
type DBStorage struct {
	db *sql.DB
}

func NewDBStorage(db *sql.DB) *DBStorage {
	return &DBStorage{db: db}
}

func (s *DBStorage) Save(ctx context.Context, report *Report) error {
	if s.db == nil {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run-history transaction: %w", err)
	}
	defer tx.Rollback()

	sum := report.Summary
	_, err = tx.ExecContext(ctx,
		`INSERT INTO validation_runs
			(run_id, started_at, finished_at, verdict, tokens, projects, contracts, unique_addrs, errors, warnings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, sum.StartedAt, sum.FinishedAt, string(sum.Verdict),
		sum.Tokens, sum.Projects, sum.Contracts, sum.UniqueAddresses, sum.Errors, sum.Warnings)
	if err != nil {
		return fmt.Errorf("insert run record: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO validation_findings (run_id, kind, severity, subject, message) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare finding insert: %w", err)
	}
	defer stmt.Close()
	for _, f := range report.Findings {
		if _, err := stmt.ExecContext(ctx, report.RunID, string(f.Kind), string(f.Severity), f.Subject, f.Message); err != nil {
			return fmt.Errorf("insert finding: %w", err)
		}
	}
	return tx.Commit()
}
