package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Index records every backup/discount/restore run in an embedded database
// so the operator can see what touched the store and when. It is strictly
// best-effort bookkeeping: callers log index failures and move on.
type Index struct {
	db *sql.DB
}

type Run struct {
	ID         string
	Operation  string
	BackupFile string
	Products   int
	Success    int
	Errors     int
	CreatedAt  time.Time
}

func Open(path string) (*Index, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("index db path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open index db: %w", err)
	}

	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS backup_runs (
		id TEXT PRIMARY KEY,
		operation TEXT NOT NULL,
		backup_file TEXT,
		products INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 0,
		errors INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(createTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init index schema: %w", err)
	}

	return &Index{db: db}, nil
}

func (i *Index) Close() error {
	if i == nil || i.db == nil {
		return nil
	}
	return i.db.Close()
}

func (i *Index) RecordRun(ctx context.Context, run Run) error {
	if i == nil || i.db == nil {
		return nil
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	_, err := i.db.ExecContext(ctx,
		`INSERT INTO backup_runs (id, operation, backup_file, products, success, errors, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Operation, run.BackupFile, run.Products, run.Success, run.Errors, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func (i *Index) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if i == nil || i.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := i.db.QueryContext(ctx,
		`SELECT id, operation, backup_file, products, success, errors, created_at
		 FROM backup_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Operation, &run.BackupFile,
			&run.Products, &run.Success, &run.Errors, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
