package services

import "fmt"

// InvoiceLabels holds every user-visible string of the invoice preview
type InvoiceLabels struct {
	PreviewTitle   string
	InvoiceTitle   string // Text summary title, "Invoice"
	SalesInvoice   string // Header line, "Sales invoice"
	Wholesale      string
	Retail         string
	DateLabel      string
	CustomerLabel  string
	CustomerNumber string // fmt pattern taking the customer number
	CombinedSales  string
	ColItem        string
	ColCustomer    string
	ColQuantity    string
	ColPrice       string
	ColTotal       string
	GrandTotal     string
	WeightSuffix   string
	CurrencySuffix string
	SheetName      string
	Recipient      string
	Management     string
	Print          string
	Confirm        string
	Cancel         string
	ExportExcel    string
	CopyText       string
	Copied         string
	Direction      string // "ltr", "rtl"
}

var labelSets = map[string]InvoiceLabels{
	"en": {
		PreviewTitle:   "Invoice preview",
		InvoiceTitle:   "Invoice",
		SalesInvoice:   "Sales invoice",
		Wholesale:      "(wholesale)",
		Retail:         "(retail)",
		DateLabel:      "Date",
		CustomerLabel:  "Customer",
		CustomerNumber: "Customer #%d",
		CombinedSales:  "Combined sales",
		ColItem:        "Item",
		ColCustomer:    "Customer",
		ColQuantity:    "Quantity",
		ColPrice:       "Price",
		ColTotal:       "Total",
		GrandTotal:     "Grand total",
		WeightSuffix:   "kg",
		CurrencySuffix: "SYP",
		SheetName:      "Invoice",
		Recipient:      "Recipient",
		Management:     "Management",
		Print:          "Download PDF",
		Confirm:        "Confirm",
		Cancel:         "Cancel",
		ExportExcel:    "Export Excel",
		CopyText:       "Copy text",
		Copied:         "Copied",
		Direction:      "ltr",
	},
	"ar": {
		PreviewTitle:   "معاينة الفاتورة",
		InvoiceTitle:   "فاتورة",
		SalesInvoice:   "فاتورة مبيعات",
		Wholesale:      "(جملة)",
		Retail:         "(مفرق)",
		DateLabel:      "التاريخ",
		CustomerLabel:  "العميل",
		CustomerNumber: "زبون رقم %d",
		CombinedSales:  "مبيعات مجمعة",
		ColItem:        "المادة",
		ColCustomer:    "العميل",
		ColQuantity:    "الكمية",
		ColPrice:       "السعر",
		ColTotal:       "الإجمالي",
		GrandTotal:     "المجموع الكلي",
		WeightSuffix:   "كغ",
		CurrencySuffix: "ل.س",
		SheetName:      "الفاتورة",
		Recipient:      "المستلم",
		Management:     "الإدارة",
		Print:          "تحميل PDF",
		Confirm:        "تأكيد",
		Cancel:         "إلغاء",
		ExportExcel:    "تصدير Excel",
		CopyText:       "نسخ نصي",
		Copied:         "تم النسخ",
		Direction:      "rtl",
	},
}

// LabelsFor returns the label set for a language, falling back to English
func LabelsFor(language string) InvoiceLabels {
	if labels, ok := labelSets[language]; ok {
		return labels
	}
	return labelSets["en"]
}

// CustomerNumberLabel renders the generated label for an unnamed customer
func (l InvoiceLabels) CustomerNumberLabel(number int) string {
	return fmt.Sprintf(l.CustomerNumber, number)
}
