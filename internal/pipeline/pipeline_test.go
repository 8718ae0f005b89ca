package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Lumos-Labs-HQ/martgen/internal/config"
	"github.com/Lumos-Labs-HQ/martgen/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/martgen/internal/datagen"
)

func mysqlPipeline(t *testing.T) (*Pipeline, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{Database: config.Database{Provider: "mysql"}}
	return New(cfg, mysql.NewWithDB(db)), mock
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "replace", ModeReplace.String())
	assert.Equal(t, "append", ModeAppend.String())
}

func TestSetupIssuesDDLInDependencyOrder(t *testing.T) {
	p, mock := mysqlPipeline(t)

	// Views first, then tables children-before-parents
	mock.ExpectExec("DROP VIEW IF EXISTS vw_order_details").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP VIEW IF EXISTS vw_product_revenue").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP VIEW IF EXISTS vw_customer_summary").WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec("DROP TABLE IF EXISTS competitor_prices").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP TABLE IF EXISTS orders").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP TABLE IF EXISTS customers").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP TABLE IF EXISTS products").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP TABLE IF EXISTS suppliers").WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS suppliers").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS products").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS customers").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS orders").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS competitor_prices").WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec("CREATE VIEW vw_order_details").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE VIEW vw_product_revenue").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE VIEW vw_customer_summary").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, p.Setup(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadTable(t *testing.T) {
	p, mock := mysqlPipeline(t)

	rows := [][]interface{}{
		{1, "TechSupply Co", "USA", "contact@techsupply.com"},
		{2, "Fashion Forward Ltd", "UK", "sales@fashionforward.co.uk"},
	}
	mock.ExpectExec("INSERT INTO suppliers").WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := p.LoadTable(context.Background(), "suppliers", datagen.SupplierColumns, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadTableRejectsUnknownTable(t *testing.T) {
	p, _ := mysqlPipeline(t)

	_, err := p.LoadTable(context.Background(), "nope", []string{"id"}, nil)
	assert.Error(t, err)
}

func TestLoadTableRejectsColumnMismatch(t *testing.T) {
	p, _ := mysqlPipeline(t)

	// Wrong column count
	_, err := p.LoadTable(context.Background(), "suppliers", []string{"supplier_id"}, nil)
	assert.Error(t, err)

	// Right count, wrong order
	_, err = p.LoadTable(context.Background(), "suppliers",
		[]string{"supplier_id", "country", "name", "contact_email"}, nil)
	assert.Error(t, err)
}

func TestLoadTableRejectsRaggedRows(t *testing.T) {
	p, _ := mysqlPipeline(t)

	rows := [][]interface{}{
		{1, "TechSupply Co", "USA", "contact@techsupply.com"},
		{2, "short row"},
	}
	_, err := p.LoadTable(context.Background(), "suppliers", datagen.SupplierColumns, rows)
	assert.Error(t, err)
}

func TestKeyOffsetsRequireExistingTables(t *testing.T) {
	p, mock := mysqlPipeline(t)

	// First table reported missing aborts the append
	mock.ExpectQuery("SELECT EXISTS").WithArgs("suppliers").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := p.keyOffsets(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "suppliers")
}

func TestManifestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()

	m := NewManifest(42, ModeReplace, "postgresql", time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC))
	m.AddTable("suppliers", 7, datagen.NewIDRange(0, 7))
	m.AddTable("products", 500, datagen.NewIDRange(0, 500))
	m.FinishedAt = m.StartedAt.Add(time.Minute)

	path, err := m.Write(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run_2026-08-01_10-30-00.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Manifest
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, m.RunID, got.RunID)
	assert.Equal(t, int64(42), got.Seed)
	assert.Equal(t, "replace", got.Mode)
	require.Len(t, got.Tables, 2)
	assert.Equal(t, TableResult{Name: "products", Rows: 500, FirstKey: 1, LastKey: 500}, got.Tables[1])
}
