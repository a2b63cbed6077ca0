package models

// UnitType is the unit a sale line item is measured in
type UnitType string

const (
	UnitPiece UnitType = "piece" // counted items
	UnitKg    UnitType = "kg"    // sold by weight
)

// SaleType is the channel a sale was made through
type SaleType string

const (
	SaleWholesale SaleType = "wholesale"
	SaleRetail    SaleType = "retail"
)

// SaleItem represents one line of a bakery sale as handed to the invoice preview.
// The preview never mutates these values.
type SaleItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Quantity       float64  `json:"quantity"`
	UnitType       UnitType `json:"unit_type"` // "piece", "kg"
	Price          float64  `json:"price"`     // Unit price
	CustomerNumber int      `json:"customer_number"`
	CustomerName   string   `json:"customer_name,omitempty"` // Optional display override
	SaleType       SaleType `json:"sale_type"`               // "wholesale", "retail"
}

// IsWeighed reports whether the item is sold by weight
func (i SaleItem) IsWeighed() bool {
	return i.UnitType == UnitKg
}
