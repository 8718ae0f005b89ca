package datagen

import "fmt"

type Supplier struct {
	SupplierID   int
	Name         string
	Country      string
	ContactEmail string
}

var SupplierColumns = []string{"supplier_id", "name", "country", "contact_email"}

// baseSuppliers is the curated seed set; runs asking for more than seven
// suppliers get faker-generated rows on top.
var baseSuppliers = []Supplier{
	{Name: "TechSupply Co", Country: "USA", ContactEmail: "contact@techsupply.com"},
	{Name: "Fashion Forward Ltd", Country: "UK", ContactEmail: "sales@fashionforward.co.uk"},
	{Name: "Jewelry Imports Inc", Country: "India", ContactEmail: "info@jewelryimports.in"},
	{Name: "Electronics Hub", Country: "China", ContactEmail: "orders@electronicshub.cn"},
	{Name: "Global Retail Supply", Country: "Germany", ContactEmail: "contact@globalretail.de"},
	{Name: "NordicTech AB", Country: "Sweden", ContactEmail: "sales@nordictech.se"},
	{Name: "Pacific Traders", Country: "Australia", ContactEmail: "info@pacifictraders.au"},
}

func (gc *Context) GenerateSuppliers(offset, count int) ([]Supplier, IDRange, error) {
	if count <= 0 {
		return nil, IDRange{}, fmt.Errorf("supplier count must be positive, got %d", count)
	}

	suppliers := make([]Supplier, count)
	for i := 0; i < count; i++ {
		var s Supplier
		if i < len(baseSuppliers) {
			s = baseSuppliers[i]
		} else {
			s = Supplier{
				Name:         gc.faker.Company(),
				Country:      gc.faker.Country(),
				ContactEmail: gc.faker.Email(),
			}
		}
		s.SupplierID = offset + i + 1
		suppliers[i] = s
	}

	return suppliers, NewIDRange(offset, count), nil
}

func SupplierRows(suppliers []Supplier) [][]interface{} {
	rows := make([][]interface{}, len(suppliers))
	for i, s := range suppliers {
		rows[i] = []interface{}{s.SupplierID, s.Name, s.Country, s.ContactEmail}
	}
	return rows
}
