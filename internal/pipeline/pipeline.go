package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/Lumos-Labs-HQ/martgen/internal/config"
	"github.com/Lumos-Labs-HQ/martgen/internal/database"
	"github.com/Lumos-Labs-HQ/martgen/internal/datagen"
	"github.com/Lumos-Labs-HQ/martgen/internal/schema"
)

// Mode selects how the loader treats existing table contents.
type Mode int

const (
	// ModeReplace drops and recreates every table before loading.
	ModeReplace Mode = iota
	// ModeAppend keeps existing rows; new surrogate keys start past the
	// current MAX(pk) of each table so they can never collide.
	ModeAppend
)

func (m Mode) String() string {
	if m == ModeAppend {
		return "append"
	}
	return "replace"
}

type Options struct {
	Mode        Mode
	Seed        int64
	SkipCatalog bool
}

// Pipeline runs the whole load sequentially: reset, then generate+load each
// entity in dependency order. One adapter, one run at a time.
type Pipeline struct {
	cfg     *config.Config
	adapter database.Adapter
}

func New(cfg *config.Config, adapter database.Adapter) *Pipeline {
	return &Pipeline{cfg: cfg, adapter: adapter}
}

// Setup brings the store to a known-empty state: views dropped first, then
// tables children-before-parents, then recreated parents-before-children.
// Safe to call against an empty or partially created schema.
func (p *Pipeline) Setup(ctx context.Context) error {
	provider := p.cfg.Database.Provider

	for _, v := range schema.Views() {
		if err := p.adapter.Exec(ctx, schema.DropViewSQL(v.Name)); err != nil {
			return fmt.Errorf("failed to drop view %s: %w", v.Name, err)
		}
	}

	dropOrder, err := schema.DropOrder()
	if err != nil {
		return err
	}
	for _, name := range dropOrder {
		t, _ := schema.TableByName(name)
		if err := p.adapter.Exec(ctx, schema.DropSQL(t, provider)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", name, err)
		}
	}

	insertOrder, err := schema.InsertOrder()
	if err != nil {
		return err
	}
	for _, name := range insertOrder {
		t, _ := schema.TableByName(name)
		if err := p.adapter.Exec(ctx, schema.CreateSQL(t, provider)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", name, err)
		}
	}

	for _, v := range schema.Views() {
		if err := p.adapter.Exec(ctx, v.SQL); err != nil {
			return fmt.Errorf("failed to create view %s: %w", v.Name, err)
		}
	}

	return nil
}

// Run executes the full pipeline and returns the run manifest. Any store or
// ordering error aborts the remaining stages immediately.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Manifest, error) {
	started := time.Now()

	seed := opts.Seed
	if seed == 0 {
		seed = started.UnixNano()
	}

	color.Cyan("🚀 Starting data pipeline (mode: %s, seed: %d)", opts.Mode, seed)

	var offsets map[string]int
	switch opts.Mode {
	case ModeReplace:
		color.Yellow("🗑️  Resetting schema...")
		if err := p.Setup(ctx); err != nil {
			return nil, fmt.Errorf("reset failed: %w", err)
		}
		offsets = map[string]int{}
		color.Green("✅ Schema ready")
	case ModeAppend:
		var err error
		offsets, err = p.keyOffsets(ctx)
		if err != nil {
			return nil, err
		}
	}

	gc := datagen.NewContext(seed, started, datagen.Bounds{
		ProductPriceMin:   p.cfg.Generate.ProductPriceMin,
		ProductPriceMax:   p.cfg.Generate.ProductPriceMax,
		OrderPriceMin:     p.cfg.Generate.OrderPriceMin,
		OrderPriceMax:     p.cfg.Generate.OrderPriceMax,
		OrderHistoryDays:  p.cfg.Generate.OrderHistoryDays,
		SignupHistoryDays: p.cfg.Generate.SignupHistoryDays,
	})

	baseNames := p.baseProductNames(ctx, gc, opts.SkipCatalog)
	counts := p.cfg.Counts
	manifest := NewManifest(seed, opts.Mode, p.cfg.Database.Provider, started)

	// Suppliers
	suppliers, supplierRange, err := gc.GenerateSuppliers(offsets["suppliers"], counts.Suppliers)
	if err != nil {
		return nil, err
	}
	if err := p.loadStage(ctx, manifest, "suppliers", datagen.SupplierColumns, datagen.SupplierRows(suppliers), supplierRange); err != nil {
		return nil, err
	}

	// Products
	products, productRange, err := gc.GenerateProducts(offsets["products"], counts.Products, supplierRange, baseNames)
	if err != nil {
		return nil, err
	}
	if err := p.loadStage(ctx, manifest, "products", datagen.ProductColumns, datagen.ProductRows(products), productRange); err != nil {
		return nil, err
	}

	// Customers
	customers, customerRange, err := gc.GenerateCustomers(offsets["customers"], counts.Customers)
	if err != nil {
		return nil, err
	}
	if err := p.loadStage(ctx, manifest, "customers", datagen.CustomerColumns, datagen.CustomerRows(customers), customerRange); err != nil {
		return nil, err
	}

	// Orders
	orders, orderRange, err := gc.GenerateOrders(offsets["orders"], counts.Orders, customerRange, productRange)
	if err != nil {
		return nil, err
	}
	if err := p.loadStage(ctx, manifest, "orders", datagen.OrderColumns, datagen.OrderRows(orders), orderRange); err != nil {
		return nil, err
	}

	// Competitor prices
	prices, priceRange, err := gc.GenerateCompetitorPrices(offsets["competitor_prices"], productRange, counts.CompetitorsPerProduct)
	if err != nil {
		return nil, err
	}
	if err := p.loadStage(ctx, manifest, "competitor_prices", datagen.CompetitorPriceColumns, datagen.CompetitorPriceRows(prices), priceRange); err != nil {
		return nil, err
	}

	manifest.FinishedAt = time.Now()
	color.Green("\n✅ Pipeline completed: %d tables loaded", len(manifest.Tables))
	return manifest, nil
}

// keyOffsets reads the current MAX(pk) of every table so append runs start
// their key sequences past existing rows.
func (p *Pipeline) keyOffsets(ctx context.Context) (map[string]int, error) {
	offsets := make(map[string]int)
	for _, t := range schema.Tables() {
		exists, err := p.adapter.TableExists(ctx, t.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check table %s: %w", t.Name, err)
		}
		if !exists {
			return nil, fmt.Errorf("table %s does not exist; run 'martgen setup' before appending", t.Name)
		}
		max, err := p.adapter.MaxID(ctx, t.Name, t.PrimaryKey())
		if err != nil {
			return nil, err
		}
		offsets[t.Name] = int(max)
	}
	return offsets, nil
}

// baseProductNames resolves product base names: one bounded catalog attempt,
// then the local fallback. Fetch failures are absorbed here and never reach
// the loader.
func (p *Pipeline) baseProductNames(ctx context.Context, gc *datagen.Context, skip bool) []string {
	if !skip {
		timeout := time.Duration(p.cfg.Catalog.TimeoutSeconds) * time.Second
		names, err := datagen.FetchCatalogNames(ctx, p.cfg.Catalog.URL, timeout)
		if err == nil {
			color.Cyan("📦 Seeded %d base product names from catalog", len(names))
			return names
		}
		color.Yellow("⚠️  Catalog fetch failed (%v), using local fallback names", err)
	}
	return gc.FallbackNames(20)
}
