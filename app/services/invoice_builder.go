package services

import (
	"strconv"
	"time"

	"BakeryPOS/app/models"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// InvoiceOptions carries everything besides the items that shapes a preview
type InvoiceOptions struct {
	ShopName       string
	Language       string
	CurrencySuffix string // Empty uses the language default
	DateLayout     string
	Now            time.Time
}

// InvoiceLine is one rendered row of the invoice table
type InvoiceLine struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Quantity     float64         `json:"quantity"`
	QuantityText string          `json:"quantity_text"`
	UnitSuffix   string          `json:"unit_suffix"` // Only set for weighed items
	Price        float64         `json:"price"`
	PriceText    string          `json:"price_text"`
	LineTotal    decimal.Decimal `json:"line_total"`
	TotalText    string          `json:"total_text"`
	Customer     string          `json:"customer"` // Per-line customer, used by exports
}

// InvoiceView is the derived, display-ready form of a list of sale items
type InvoiceView struct {
	ShopName       string          `json:"shop_name"`
	Title          string          `json:"title"` // "Sales invoice (retail)"
	ChannelLabel   string          `json:"channel_label"`
	IsWholesale    bool            `json:"is_wholesale"`
	Date           string          `json:"date"`
	CustomerLabel  string          `json:"customer_label"`
	Lines          []InvoiceLine   `json:"lines"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	GrandTotalText string          `json:"grand_total_text"`
	CurrencySuffix string          `json:"currency_suffix"`
	Labels         InvoiceLabels   `json:"labels"`
}

// LineTotal returns price × quantity for one item
func LineTotal(item models.SaleItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromFloat(item.Quantity))
}

// GrandTotal sums the line totals of items; an empty list totals zero
func GrandTotal(items []models.SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item))
	}
	return total
}

// FormatAmount renders a number with thousands separators and ASCII digits,
// keeping at most three fraction digits ("2,500", "1,234.5")
func FormatAmount(d decimal.Decimal) string {
	return humanize.Commaf(d.Round(3).InexactFloat64())
}

// formatPlain renders a number the shortest way without grouping ("1.5", "1000")
func formatPlain(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ResolveCustomerLabel picks the invoice-wide customer label.
// Mixed customers always yield the combined label, even when the first
// item carries a name. A single customer uses the first item's name when
// present and the generated number label otherwise.
func ResolveCustomerLabel(items []models.SaleItem, labels InvoiceLabels) string {
	if len(items) == 0 {
		return labels.CombinedSales
	}

	customers := make(map[int]struct{}, len(items))
	for _, item := range items {
		customers[item.CustomerNumber] = struct{}{}
	}
	if len(customers) != 1 {
		return labels.CombinedSales
	}

	first := items[0]
	if first.CustomerName != "" {
		return first.CustomerName
	}
	return labels.CustomerNumberLabel(first.CustomerNumber)
}

// lineCustomer is the customer shown next to a single item in exports
func lineCustomer(item models.SaleItem, labels InvoiceLabels) string {
	if item.CustomerName != "" {
		return item.CustomerName
	}
	return labels.CustomerNumberLabel(item.CustomerNumber)
}

// BuildInvoice derives the invoice view from items. It never modifies items.
func BuildInvoice(items []models.SaleItem, opts InvoiceOptions) *InvoiceView {
	labels := LabelsFor(opts.Language)

	layout := opts.DateLayout
	if layout == "" {
		layout = "02/01/2006"
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	currency := opts.CurrencySuffix
	if currency == "" {
		currency = labels.CurrencySuffix
	}

	isWholesale := len(items) > 0 && items[0].SaleType == models.SaleWholesale
	channel := labels.Retail
	if isWholesale {
		channel = labels.Wholesale
	}

	view := &InvoiceView{
		ShopName:       opts.ShopName,
		Title:          labels.SalesInvoice + " " + channel,
		ChannelLabel:   channel,
		IsWholesale:    isWholesale,
		Date:           now.Format(layout),
		CustomerLabel:  ResolveCustomerLabel(items, labels),
		Lines:          make([]InvoiceLine, 0, len(items)),
		GrandTotal:     decimal.Zero,
		CurrencySuffix: currency,
		Labels:         labels,
	}

	for _, item := range items {
		total := LineTotal(item)
		line := InvoiceLine{
			ID:           item.ID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			QuantityText: FormatAmount(decimal.NewFromFloat(item.Quantity)),
			Price:        item.Price,
			PriceText:    FormatAmount(decimal.NewFromFloat(item.Price)),
			LineTotal:    total,
			TotalText:    FormatAmount(total),
			Customer:     lineCustomer(item, labels),
		}
		if item.IsWeighed() {
			line.UnitSuffix = labels.WeightSuffix
		}
		view.Lines = append(view.Lines, line)
		view.GrandTotal = view.GrandTotal.Add(total)
	}
	view.GrandTotalText = FormatAmount(view.GrandTotal)

	return view
}
