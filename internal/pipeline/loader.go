package pipeline

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/Lumos-Labs-HQ/martgen/internal/datagen"
	"github.com/Lumos-Labs-HQ/martgen/internal/schema"
)

// LoadTable validates row shapes against the declared schema and hands the
// batch to the adapter. The first store error aborts the whole run; there is
// no partial-batch recovery.
func (p *Pipeline) LoadTable(ctx context.Context, table string, columns []string, rows [][]interface{}) (int64, error) {
	if err := validateShape(table, columns, rows); err != nil {
		return 0, err
	}
	n, err := p.adapter.BulkInsert(ctx, table, columns, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", table, err)
	}
	return n, nil
}

func (p *Pipeline) loadStage(ctx context.Context, m *Manifest, table string, columns []string, rows [][]interface{}, keys datagen.IDRange) error {
	color.Cyan("🌱 Loading %s (%d rows)...", table, len(rows))
	n, err := p.LoadTable(ctx, table, columns, rows)
	if err != nil {
		return err
	}
	color.Green("✅ %s: %d rows (keys %d..%d)", table, n, keys.First, keys.Last)
	m.AddTable(table, n, keys)
	return nil
}

// validateShape rejects batches whose columns do not match the declared
// table exactly, and rows whose width differs from the column list. Catching
// this before the driver keeps the error attributable to the generator
// rather than surfacing as a placeholder-count mismatch.
func validateShape(table string, columns []string, rows [][]interface{}) error {
	t, ok := schema.TableByName(table)
	if !ok {
		return fmt.Errorf("unknown table %s", table)
	}
	declared := t.ColumnNames()
	if len(columns) != len(declared) {
		return fmt.Errorf("table %s expects %d columns, got %d", table, len(declared), len(columns))
	}
	for i, name := range declared {
		if columns[i] != name {
			return fmt.Errorf("table %s column %d: expected %s, got %s", table, i, name, columns[i])
		}
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("table %s row %d has %d values, expected %d", table, i, len(row), len(columns))
		}
	}
	return nil
}
