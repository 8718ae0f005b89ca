package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Lumos-Labs-HQ/martgen/internal/database/common"
)

type Adapter struct {
	db *sql.DB
}

func New() *Adapter {
	return &Adapter{}
}

// NewWithDB wraps an existing connection, used by tests with sqlmock or an
// in-memory database.
func NewWithDB(db *sql.DB) *Adapter {
	return &Adapter{db: db}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	// Accept both sqlite://path and a bare file path
	path := strings.TrimPrefix(url, "sqlite://")
	path = strings.TrimPrefix(path, "file:")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// sqlite handles one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) Exec(ctx context.Context, query string) error {
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *Adapter) Query(ctx context.Context, query string) (*common.QueryResult, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()
	return common.ScanRows(rows)
}

func (s *Adapter) TableExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
	return count > 0, err
}

func (s *Adapter) RowCount(ctx context.Context, table string) (int64, error) {
	return common.RowCount(ctx, s.db, table)
}

func (s *Adapter) MaxID(ctx context.Context, table, column string) (int64, error) {
	exists, err := s.TableExists(ctx, table)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	return common.MaxID(ctx, s.db, table, column)
}

func (s *Adapter) BulkInsert(ctx context.Context, table string, columns []string, rows [][]interface{}) (int64, error) {
	// sqlite caps bound parameters per statement, keep batches small
	batch := 999 / len(columns)
	return common.BulkInsert(ctx, s.db, squirrel.Question, table, columns, rows, batch)
}
