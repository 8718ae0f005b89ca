package schema

import (
	"fmt"
	"strings"
)

// ColumnType is a database-agnostic column type. Each provider adapter maps
// it to its own SQL type via TypeFor.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt
	TypeDecimal
	TypeTimestamp
	TypeDate
	TypeText
)

type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
	IsPK     bool
	Unique   bool
}

type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

func (t Table) PrimaryKey() string {
	for _, c := range t.Columns {
		if c.IsPK {
			return c.Name
		}
	}
	return ""
}

func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func (t Table) Dependencies() []string {
	var deps []string
	for _, fk := range t.ForeignKeys {
		if fk.RefTable != t.Name {
			deps = append(deps, fk.RefTable)
		}
	}
	return deps
}

// Tables returns the five analytics tables. Surrogate keys are supplied by
// the generators, so primary keys are plain integers rather than serials.
func Tables() []Table {
	return []Table{
		{
			Name: "suppliers",
			Columns: []Column{
				{Name: "supplier_id", Type: TypeInt, IsPK: true},
				{Name: "name", Type: TypeString},
				{Name: "country", Type: TypeString, Nullable: true},
				{Name: "contact_email", Type: TypeString, Nullable: true},
			},
		},
		{
			Name: "products",
			Columns: []Column{
				{Name: "product_id", Type: TypeInt, IsPK: true},
				{Name: "name", Type: TypeString},
				{Name: "category", Type: TypeString, Nullable: true},
				{Name: "price", Type: TypeDecimal},
				{Name: "supplier_id", Type: TypeInt},
				{Name: "stock_quantity", Type: TypeInt},
				{Name: "description", Type: TypeText, Nullable: true},
			},
			ForeignKeys: []ForeignKey{
				{Column: "supplier_id", RefTable: "suppliers", RefColumn: "supplier_id"},
			},
		},
		{
			Name: "customers",
			Columns: []Column{
				{Name: "customer_id", Type: TypeInt, IsPK: true},
				{Name: "name", Type: TypeString},
				{Name: "email", Type: TypeString, Unique: true},
				{Name: "city", Type: TypeString, Nullable: true},
				{Name: "country", Type: TypeString, Nullable: true},
				{Name: "signup_date", Type: TypeDate, Nullable: true},
			},
		},
		{
			Name: "orders",
			Columns: []Column{
				{Name: "order_id", Type: TypeInt, IsPK: true},
				{Name: "customer_id", Type: TypeInt},
				{Name: "product_id", Type: TypeInt},
				{Name: "quantity", Type: TypeInt},
				{Name: "order_date", Type: TypeTimestamp, Nullable: true},
				{Name: "channel", Type: TypeString, Nullable: true},
				{Name: "total_amount", Type: TypeDecimal},
				{Name: "status", Type: TypeString, Nullable: true},
			},
			ForeignKeys: []ForeignKey{
				{Column: "customer_id", RefTable: "customers", RefColumn: "customer_id"},
				{Column: "product_id", RefTable: "products", RefColumn: "product_id"},
			},
		},
		{
			Name: "competitor_prices",
			Columns: []Column{
				{Name: "price_id", Type: TypeInt, IsPK: true},
				{Name: "product_id", Type: TypeInt},
				{Name: "competitor", Type: TypeString},
				{Name: "price", Type: TypeDecimal},
				{Name: "date_scraped", Type: TypeTimestamp, Nullable: true},
			},
			ForeignKeys: []ForeignKey{
				{Column: "product_id", RefTable: "products", RefColumn: "product_id"},
			},
		},
	}
}

func TableByName(name string) (Table, bool) {
	for _, t := range Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// InsertOrder returns table names in dependency order (parents before
// children) via depth-first topological sort.
func InsertOrder() ([]string, error) {
	tables := Tables()
	byName := make(map[string]Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if temp[name] {
			return fmt.Errorf("circular dependency detected involving table: %s", name)
		}
		if visited[name] {
			return nil
		}
		temp[name] = true
		for _, dep := range byName[name].Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		temp[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, t := range tables {
		if !visited[t.Name] {
			if err := visit(t.Name); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

// DropOrder is InsertOrder reversed: children are dropped before parents.
func DropOrder() ([]string, error) {
	order, err := InsertOrder()
	if err != nil {
		return nil, err
	}
	reversed := make([]string, len(order))
	for i, name := range order {
		reversed[len(order)-1-i] = name
	}
	return reversed, nil
}

// TypeFor maps a semantic column type to the provider's SQL type.
func TypeFor(ct ColumnType, provider string) string {
	switch provider {
	case "mysql":
		switch ct {
		case TypeString:
			return "VARCHAR(500)"
		case TypeInt:
			return "INT"
		case TypeDecimal:
			return "DECIMAL(10,2)"
		case TypeTimestamp:
			return "DATETIME"
		case TypeDate:
			return "DATE"
		case TypeText:
			return "TEXT"
		}
	case "sqlite", "sqlite3":
		switch ct {
		case TypeString, TypeText:
			return "TEXT"
		case TypeInt:
			return "INTEGER"
		case TypeDecimal:
			return "REAL"
		case TypeTimestamp, TypeDate:
			return "TEXT"
		}
	default: // postgresql
		switch ct {
		case TypeString:
			return "TEXT"
		case TypeInt:
			return "INTEGER"
		case TypeDecimal:
			return "NUMERIC(10,2)"
		case TypeTimestamp:
			return "TIMESTAMP"
		case TypeDate:
			return "DATE"
		case TypeText:
			return "TEXT"
		}
	}
	return "TEXT"
}

// CreateSQL generates the CREATE TABLE statement for the given provider.
func CreateSQL(t Table, provider string) string {
	var defs []string
	for _, c := range t.Columns {
		def := fmt.Sprintf("    %s %s", c.Name, TypeFor(c.Type, provider))
		if c.IsPK {
			def += " PRIMARY KEY"
		} else if !c.Nullable {
			def += " NOT NULL"
		}
		if c.Unique {
			def += " UNIQUE"
		}
		defs = append(defs, def)
	}
	for _, fk := range t.ForeignKeys {
		defs = append(defs, fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s(%s)",
			fk.Column, fk.RefTable, fk.RefColumn))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", t.Name, strings.Join(defs, ",\n"))
}

// DropSQL generates the DROP TABLE statement. Postgres cascades so that
// dependent views do not block a reset.
func DropSQL(t Table, provider string) string {
	switch provider {
	case "postgresql", "postgres":
		return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", t.Name)
	default:
		return fmt.Sprintf("DROP TABLE IF EXISTS %s", t.Name)
	}
}

// View is a read-only reporting view consumed by the export step.
type View struct {
	Name string
	SQL  string
}

// Views returns the three reporting views joining the loaded tables. The SQL
// sticks to joins and aggregates so it runs on every supported provider.
func Views() []View {
	return []View{
		{
			Name: "vw_order_details",
			SQL: `CREATE VIEW vw_order_details AS
SELECT o.order_id, o.order_date, o.channel, o.status, o.quantity, o.total_amount,
       c.customer_id, c.name AS customer_name, c.city, c.country,
       p.product_id, p.name AS product_name, p.category, p.price AS list_price
FROM orders o
JOIN customers c ON c.customer_id = o.customer_id
JOIN products p ON p.product_id = o.product_id`,
		},
		{
			Name: "vw_product_revenue",
			SQL: `CREATE VIEW vw_product_revenue AS
SELECT p.product_id, p.name, p.category, p.price,
       COUNT(o.order_id) AS times_ordered,
       COALESCE(SUM(o.quantity), 0) AS units_sold,
       COALESCE(SUM(o.total_amount), 0) AS total_revenue
FROM products p
LEFT JOIN orders o ON o.product_id = p.product_id
GROUP BY p.product_id, p.name, p.category, p.price`,
		},
		{
			Name: "vw_customer_summary",
			SQL: `CREATE VIEW vw_customer_summary AS
SELECT c.customer_id, c.name, c.country, c.city,
       COUNT(o.order_id) AS total_orders,
       COALESCE(SUM(o.total_amount), 0) AS lifetime_value
FROM customers c
LEFT JOIN orders o ON o.customer_id = c.customer_id
GROUP BY c.customer_id, c.name, c.country, c.city`,
		},
	}
}

func DropViewSQL(name string) string {
	return fmt.Sprintf("DROP VIEW IF EXISTS %s", name)
}
