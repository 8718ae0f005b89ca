package datagen

import (
	"math"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Bounds are the sampling ranges used by the generators.
type Bounds struct {
	ProductPriceMin   float64
	ProductPriceMax   float64
	OrderPriceMin     float64
	OrderPriceMax     float64
	OrderHistoryDays  int
	SignupHistoryDays int
}

func DefaultBounds() Bounds {
	return Bounds{
		ProductPriceMin:   5,
		ProductPriceMax:   1500,
		OrderPriceMin:     10,
		OrderPriceMax:     2000,
		OrderHistoryDays:  365,
		SignupHistoryDays: 3 * 365,
	}
}

// Context carries an explicit random source through every generator so a run
// is reproducible from its seed. No generator touches package-level state.
type Context struct {
	rand   *rand.Rand
	faker  *gofakeit.Faker
	now    time.Time
	bounds Bounds
}

func NewContext(seed int64, now time.Time, bounds Bounds) *Context {
	return &Context{
		rand:   rand.New(rand.NewSource(seed)),
		faker:  gofakeit.New(seed),
		now:    now,
		bounds: bounds,
	}
}

func (gc *Context) intBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + gc.rand.Intn(max-min+1)
}

func (gc *Context) floatBetween(min, max float64) float64 {
	return min + gc.rand.Float64()*(max-min)
}

// priceBetween samples a continuous uniform price and rounds it to cents.
func (gc *Context) priceBetween(min, max float64) float64 {
	return RoundCents(gc.floatBetween(min, max))
}

// timeWithin returns a timestamp uniformly drawn from the window ending now.
func (gc *Context) timeWithin(daysBack int) time.Time {
	if daysBack <= 0 {
		return gc.now
	}
	offset := time.Duration(gc.rand.Int63n(int64(daysBack) * 24 * int64(time.Hour)))
	return gc.now.Add(-offset)
}

// dateWithin is timeWithin truncated to midnight UTC.
func (gc *Context) dateWithin(daysBack int) time.Time {
	t := gc.timeWithin(daysBack)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (gc *Context) pick(pool []string) string {
	return pool[gc.rand.Intn(len(pool))]
}

// RoundCents rounds a monetary amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
