package common

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// QueryResult holds a generic result set with column order preserved.
type QueryResult struct {
	Columns []string
	Rows    [][]interface{}
}

// ScanRows drains a database/sql result set into a QueryResult.
func ScanRows(rows *sql.Rows) (*QueryResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := &QueryResult{Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			// Drivers hand back []byte for text columns; normalize to string
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}

// BulkInsert writes rows in multi-row INSERT batches built with squirrel.
// Used by the database/sql providers; the postgres adapter uses CopyFrom
// instead.
func BulkInsert(ctx context.Context, db *sql.DB, format squirrel.PlaceholderFormat, table string, columns []string, rows [][]interface{}, batchSize int) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	var inserted int64
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		builder := squirrel.Insert(table).Columns(columns...).PlaceholderFormat(format)
		for _, row := range rows[start:end] {
			builder = builder.Values(row...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return inserted, fmt.Errorf("failed to build insert for %s: %w", table, err)
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return inserted, fmt.Errorf("failed to insert batch into %s: %w", table, err)
		}
		inserted += int64(end - start)
	}
	return inserted, nil
}

// MaxID returns the largest value of an integer key column, or 0 for an
// empty or missing table.
func MaxID(ctx context.Context, db *sql.DB, table, column string) (int64, error) {
	var max sql.NullInt64
	query := fmt.Sprintf("SELECT MAX(%s) FROM %s", column, table)
	if err := db.QueryRowContext(ctx, query).Scan(&max); err != nil {
		if strings.Contains(err.Error(), "no such table") || strings.Contains(err.Error(), "doesn't exist") {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to query max %s.%s: %w", table, column, err)
	}
	if !max.Valid {
		return 0, nil
	}
	return max.Int64, nil
}

// RowCount returns the number of rows in a table.
func RowCount(ctx context.Context, db *sql.DB, table string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}
