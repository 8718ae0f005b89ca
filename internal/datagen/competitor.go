package datagen

import (
	"fmt"
	"time"
)

type CompetitorPrice struct {
	PriceID     int
	ProductID   int
	Competitor  string
	Price       float64
	DateScraped time.Time
}

var CompetitorPriceColumns = []string{"price_id", "product_id", "competitor", "price", "date_scraped"}

// Competitors is the fixed name set competitor prices are sampled from.
var Competitors = []string{"Amazon", "eBay", "Walmart", "BestBuy", "Target", "AliExpress", "Newegg"}

// GenerateCompetitorPrices emits perProduct rows for every product in the
// range, each batch a without-replacement sample of the competitor set so a
// product never gets the same competitor twice in one run.
func (gc *Context) GenerateCompetitorPrices(offset int, products IDRange, perProduct int) ([]CompetitorPrice, IDRange, error) {
	if products.Empty() {
		return nil, IDRange{}, fmt.Errorf("product ID range is empty; generate products first")
	}
	if perProduct <= 0 {
		return nil, IDRange{}, fmt.Errorf("competitors per product must be positive, got %d", perProduct)
	}
	if perProduct > len(Competitors) {
		return nil, IDRange{}, fmt.Errorf("cannot sample %d of %d competitors without repetition", perProduct, len(Competitors))
	}

	count := products.Count() * perProduct
	prices := make([]CompetitorPrice, 0, count)
	for productID := products.First; productID <= products.Last; productID++ {
		perm := gc.rand.Perm(len(Competitors))
		for _, idx := range perm[:perProduct] {
			prices = append(prices, CompetitorPrice{
				PriceID:     offset + len(prices) + 1,
				ProductID:   productID,
				Competitor:  Competitors[idx],
				Price:       gc.priceBetween(gc.bounds.ProductPriceMin, gc.bounds.ProductPriceMax),
				DateScraped: gc.now.UTC(),
			})
		}
	}

	return prices, NewIDRange(offset, count), nil
}

func CompetitorPriceRows(prices []CompetitorPrice) [][]interface{} {
	rows := make([][]interface{}, len(prices))
	for i, p := range prices {
		rows[i] = []interface{}{p.PriceID, p.ProductID, p.Competitor, p.Price, p.DateScraped}
	}
	return rows
}
