package datagen

import "fmt"

type Product struct {
	ProductID     int
	Name          string
	Category      string
	Price         float64
	SupplierID    int
	StockQuantity int
	Description   string
}

var ProductColumns = []string{"product_id", "name", "category", "price", "supplier_id", "stock_quantity", "description"}

var productCategories = []string{"electronics", "fashion", "home", "sports", "beauty", "toys"}

var productSuffixes = []string{"Pro", "Max", "Lite", "X", "Mini", "Plus"}

// GenerateProducts expands baseNames (catalog titles or local fallback) into
// count products. The supplier range must already be decided: every product
// references a supplier key inside it.
func (gc *Context) GenerateProducts(offset, count int, suppliers IDRange, baseNames []string) ([]Product, IDRange, error) {
	if count <= 0 {
		return nil, IDRange{}, fmt.Errorf("product count must be positive, got %d", count)
	}
	if suppliers.Empty() {
		return nil, IDRange{}, fmt.Errorf("supplier ID range is empty; generate suppliers first")
	}
	if len(baseNames) == 0 {
		return nil, IDRange{}, fmt.Errorf("no base product names available")
	}

	products := make([]Product, count)
	for i := 0; i < count; i++ {
		products[i] = Product{
			ProductID:     offset + i + 1,
			Name:          fmt.Sprintf("%s %s", gc.pick(baseNames), gc.pick(productSuffixes)),
			Category:      gc.pick(productCategories),
			Price:         gc.priceBetween(gc.bounds.ProductPriceMin, gc.bounds.ProductPriceMax),
			SupplierID:    suppliers.Random(gc.rand),
			StockQuantity: gc.intBetween(20, 1000),
			Description:   gc.faker.Sentence(12),
		}
	}

	return products, NewIDRange(offset, count), nil
}

func ProductRows(products []Product) [][]interface{} {
	rows := make([][]interface{}, len(products))
	for i, p := range products {
		rows[i] = []interface{}{p.ProductID, p.Name, p.Category, p.Price, p.SupplierID, p.StockQuantity, p.Description}
	}
	return rows
}
