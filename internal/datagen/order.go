package datagen

import (
	"fmt"
	"time"
)

type Order struct {
	OrderID     int
	CustomerID  int
	ProductID   int
	Quantity    int
	OrderDate   time.Time
	Channel     string
	TotalAmount float64
	Status      string
}

var OrderColumns = []string{"order_id", "customer_id", "product_id", "quantity", "order_date", "channel", "total_amount", "status"}

var OrderChannels = []string{"online", "retail", "mobile", "partner"}

var OrderStatuses = []string{"pending", "shipped", "completed", "returned", "cancelled"}

// OrderTotal derives the stored amount from a sampled per-unit price. The
// unit price is rounded to cents first so the total divides back exactly.
func OrderTotal(unitPrice float64, quantity int) float64 {
	return RoundCents(RoundCents(unitPrice) * float64(quantity))
}

// GenerateOrders samples customer and product references uniformly with
// replacement over the full upstream ranges; a customer or product may
// appear in zero, one, or many orders.
func (gc *Context) GenerateOrders(offset, count int, customers, products IDRange) ([]Order, IDRange, error) {
	if count <= 0 {
		return nil, IDRange{}, fmt.Errorf("order count must be positive, got %d", count)
	}
	if customers.Empty() {
		return nil, IDRange{}, fmt.Errorf("customer ID range is empty; generate customers first")
	}
	if products.Empty() {
		return nil, IDRange{}, fmt.Errorf("product ID range is empty; generate products first")
	}

	orders := make([]Order, count)
	for i := 0; i < count; i++ {
		quantity := gc.intBetween(1, 5)
		unitPrice := gc.floatBetween(gc.bounds.OrderPriceMin, gc.bounds.OrderPriceMax)

		orders[i] = Order{
			OrderID:     offset + i + 1,
			CustomerID:  customers.Random(gc.rand),
			ProductID:   products.Random(gc.rand),
			Quantity:    quantity,
			OrderDate:   gc.timeWithin(gc.bounds.OrderHistoryDays),
			Channel:     gc.pick(OrderChannels),
			TotalAmount: OrderTotal(unitPrice, quantity),
			Status:      gc.pick(OrderStatuses),
		}
	}

	return orders, NewIDRange(offset, count), nil
}

func OrderRows(orders []Order) [][]interface{} {
	rows := make([][]interface{}, len(orders))
	for i, o := range orders {
		rows[i] = []interface{}{o.OrderID, o.CustomerID, o.ProductID, o.Quantity, o.OrderDate, o.Channel, o.TotalAmount, o.Status}
	}
	return rows
}
