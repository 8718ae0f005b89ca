package datagen

import (
	"fmt"
	"strings"
	"time"
)

type Customer struct {
	CustomerID int
	Name       string
	Email      string
	City       string
	Country    string
	SignupDate time.Time
}

var CustomerColumns = []string{"customer_id", "name", "email", "city", "country", "signup_date"}

// emailRetries bounds the regenerate-on-collision loop before falling back
// to a key-suffixed address, which is unique by construction.
const emailRetries = 10

func (gc *Context) GenerateCustomers(offset, count int) ([]Customer, IDRange, error) {
	if count <= 0 {
		return nil, IDRange{}, fmt.Errorf("customer count must be positive, got %d", count)
	}

	seen := make(map[string]struct{}, count)
	customers := make([]Customer, count)
	for i := 0; i < count; i++ {
		id := offset + i + 1
		email := gc.uniqueEmail(id, seen)
		seen[email] = struct{}{}

		customers[i] = Customer{
			CustomerID: id,
			Name:       gc.faker.Name(),
			Email:      email,
			City:       gc.faker.City(),
			Country:    gc.faker.Country(),
			SignupDate: gc.dateWithin(gc.bounds.SignupHistoryDays),
		}
	}

	return customers, NewIDRange(offset, count), nil
}

// uniqueEmail regenerates on collision; the faker does not guarantee
// uniqueness at this scale.
func (gc *Context) uniqueEmail(id int, seen map[string]struct{}) string {
	for attempt := 0; attempt < emailRetries; attempt++ {
		email := strings.ToLower(gc.faker.Email())
		if _, taken := seen[email]; !taken {
			return email
		}
	}
	// Surrogate key in the local part makes the address unique per run
	email := strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", gc.faker.FirstName(), gc.faker.LastName(), id))
	if _, taken := seen[email]; taken {
		email = fmt.Sprintf("customer%d@example.com", id)
	}
	return email
}

func CustomerRows(customers []Customer) [][]interface{} {
	rows := make([][]interface{}, len(customers))
	for i, c := range customers {
		rows[i] = []interface{}{c.CustomerID, c.Name, c.Email, c.City, c.Country, c.SignupDate}
	}
	return rows
}
