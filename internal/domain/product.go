package domain

// CustomerType is a categorical label the server may attach to a
// conversation based on inferred intent.
type CustomerType string

const (
	CustomerStudent  CustomerType = "Student"
	CustomerEngineer CustomerType = "Engineer"
	CustomerGamer    CustomerType = "Gamer"
	CustomerBusiness CustomerType = "Business"
	CustomerHomeUser CustomerType = "Home User"
	CustomerOther    CustomerType = "Other"
)

// Product represents a single item in the store catalog. The client
// passes products through as-is; it never validates or mutates fields.
type Product struct {
	ID          int            `json:"id"`
	SKU         string         `json:"sku"`
	Name        string         `json:"name"`
	Brand       string         `json:"brand"`
	ProductType string         `json:"product_type"`
	Category    string         `json:"category"`
	Price       float64        `json:"price"`
	Stock       int            `json:"stock"`
	Specs       map[string]any `json:"specs,omitempty"`
	Description string         `json:"description,omitempty"`
}

// DisplayName returns the brand-qualified product name.
func (p Product) DisplayName() string {
	return p.Brand + " " + p.Name
}
