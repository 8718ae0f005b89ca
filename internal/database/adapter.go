package database

import (
	"context"

	"github.com/Lumos-Labs-HQ/martgen/internal/database/common"
	"github.com/Lumos-Labs-HQ/martgen/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/martgen/internal/database/postgres"
	"github.com/Lumos-Labs-HQ/martgen/internal/database/sqlite"
)

// Adapter is the single session the pipeline holds against the store. All
// DDL, bulk inserts and reads go through one adapter instance.
type Adapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// DDL and reads
	Exec(ctx context.Context, query string) error
	Query(ctx context.Context, query string) (*common.QueryResult, error)
	TableExists(ctx context.Context, name string) (bool, error)
	RowCount(ctx context.Context, table string) (int64, error)
	MaxID(ctx context.Context, table, column string) (int64, error)

	// Bulk loading
	BulkInsert(ctx context.Context, table string, columns []string, rows [][]interface{}) (int64, error)
}

func NewAdapter(provider string) Adapter {
	switch provider {
	case "mysql":
		return mysql.New()
	case "sqlite", "sqlite3":
		return sqlite.New()
	default:
		return postgres.New()
	}
}
