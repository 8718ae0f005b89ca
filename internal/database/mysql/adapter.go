package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"

	"github.com/Lumos-Labs-HQ/martgen/internal/database/common"
)

type Adapter struct {
	db *sql.DB
}

func New() *Adapter {
	return &Adapter{}
}

// NewWithDB wraps an existing connection, used by tests with sqlmock.
func NewWithDB(db *sql.DB) *Adapter {
	return &Adapter{db: db}
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("mysql", url)
	if err != nil {
		return fmt.Errorf("failed to open mysql connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(15 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping mysql: %w", err)
	}
	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *Adapter) Exec(ctx context.Context, query string) error {
	_, err := m.db.ExecContext(ctx, query)
	return err
}

func (m *Adapter) Query(ctx context.Context, query string) (*common.QueryResult, error) {
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()
	return common.ScanRows(rows)
}

func (m *Adapter) TableExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_name = ? AND table_schema = DATABASE()
		)
	`, name).Scan(&exists)
	return exists, err
}

func (m *Adapter) RowCount(ctx context.Context, table string) (int64, error) {
	return common.RowCount(ctx, m.db, table)
}

func (m *Adapter) MaxID(ctx context.Context, table, column string) (int64, error) {
	exists, err := m.TableExists(ctx, table)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	return common.MaxID(ctx, m.db, table, column)
}

func (m *Adapter) BulkInsert(ctx context.Context, table string, columns []string, rows [][]interface{}) (int64, error) {
	return common.BulkInsert(ctx, m.db, squirrel.Question, table, columns, rows, 500)
}
