package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fatih/color"

	"github.com/Lumos-Labs-HQ/martgen/internal/database"
	"github.com/Lumos-Labs-HQ/martgen/internal/database/common"
	"github.com/Lumos-Labs-HQ/martgen/internal/schema"
)

// utf8BOM is prepended to every CSV so spreadsheet tools detect the
// encoding instead of guessing a legacy codepage.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Exporter dumps tables, reporting views and analytics queries to CSV files
// under a single output directory. File names are fixed per source so
// re-exports overwrite in place.
type Exporter struct {
	adapter  database.Adapter
	provider string
	dir      string
}

func New(adapter database.Adapter, provider, dir string) *Exporter {
	return &Exporter{adapter: adapter, provider: provider, dir: dir}
}

// Result counts what one export run produced.
type Result struct {
	Files int
	Rows  int64
}

// Run exports every table, every view and every analytics query. A missing
// table aborts the export: partial CSV sets are worse than none.
func (e *Exporter) Run(ctx context.Context) (*Result, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	res := &Result{}

	for _, t := range schema.Tables() {
		exists, err := e.adapter.TableExists(ctx, t.Name)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("table %s does not exist; run 'martgen load' first", t.Name)
		}
		query, _, err := sq.Select(t.ColumnNames()...).From(t.Name).OrderBy(t.PrimaryKey()).ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build query for %s: %w", t.Name, err)
		}
		if err := e.exportQuery(ctx, t.Name, query, res); err != nil {
			return nil, err
		}
	}

	for _, v := range schema.Views() {
		if err := e.exportQuery(ctx, v.Name, "SELECT * FROM "+v.Name, res); err != nil {
			return nil, err
		}
	}

	for _, q := range AnalyticsQueries(e.provider) {
		if err := e.exportQuery(ctx, q.Name, q.SQL, res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (e *Exporter) exportQuery(ctx context.Context, name, query string, res *Result) error {
	result, err := e.adapter.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", name, err)
	}

	path := filepath.Join(e.dir, name+".csv")
	if err := writeCSV(path, result); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	color.Green("✅ %s: %d rows -> %s", name, len(result.Rows), path)
	res.Files++
	res.Rows += int64(len(result.Rows))
	return nil
}

func writeCSV(path string, result *common.QueryResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(result.Columns); err != nil {
		return err
	}
	record := make([]string, len(result.Columns))
	for _, row := range result.Rows {
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// formatValue renders a scanned cell for CSV. NULL becomes the empty string,
// timestamps use RFC 3339 without the zone suffix so spreadsheets parse them.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Query is a named analytics query whose result lands in <Name>.csv.
type Query struct {
	Name string
	SQL  string
}

// monthExpr truncates a timestamp column to YYYY-MM per provider.
func monthExpr(provider, column string) string {
	switch provider {
	case "mysql":
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m')", column)
	case "sqlite", "sqlite3":
		return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
	default:
		return fmt.Sprintf("TO_CHAR(%s, 'YYYY-MM')", column)
	}
}

// AnalyticsQueries returns the canned reporting queries. Only the month
// bucketing differs per provider; everything else is portable SQL.
func AnalyticsQueries(provider string) []Query {
	month := monthExpr(provider, "order_date")
	return []Query{
		{
			Name: "revenue_by_channel_month",
			SQL: fmt.Sprintf(`SELECT %s AS month, channel,
       COUNT(order_id) AS orders,
       SUM(total_amount) AS revenue
FROM orders
GROUP BY %s, channel
ORDER BY month, channel`, month, month),
		},
		{
			Name: "product_performance",
			SQL: `SELECT p.product_id, p.name, p.category, s.name AS supplier,
       COUNT(o.order_id) AS orders,
       COALESCE(SUM(o.quantity), 0) AS units_sold,
       COALESCE(SUM(o.total_amount), 0) AS revenue
FROM products p
JOIN suppliers s ON s.supplier_id = p.supplier_id
LEFT JOIN orders o ON o.product_id = p.product_id
GROUP BY p.product_id, p.name, p.category, s.name
ORDER BY revenue DESC`,
		},
		{
			Name: "customer_segments",
			SQL: `SELECT c.country,
       COUNT(DISTINCT c.customer_id) AS customers,
       COUNT(o.order_id) AS orders,
       COALESCE(SUM(o.total_amount), 0) AS revenue
FROM customers c
LEFT JOIN orders o ON o.customer_id = c.customer_id
GROUP BY c.country
ORDER BY revenue DESC`,
		},
		{
			Name: "competitor_price_comparison",
			SQL: `SELECT p.product_id, p.name, p.price AS our_price,
       cp.competitor, cp.price AS competitor_price,
       p.price - cp.price AS price_gap
FROM competitor_prices cp
JOIN products p ON p.product_id = cp.product_id
ORDER BY p.product_id, cp.competitor`,
		},
	}
}
