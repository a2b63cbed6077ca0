package services

import (
	"fmt"
	"strings"
)

const textSeparator = "------------------"

// InvoiceText builds the plain-text summary copied to the clipboard:
// title, date and customer lines, one line per item, then the bold total.
func InvoiceText(view *InvoiceView) string {
	l := view.Labels

	var b strings.Builder
	fmt.Fprintf(&b, "*%s - %s*\n", l.InvoiceTitle, view.ShopName)
	fmt.Fprintf(&b, "%s: %s\n", l.DateLabel, view.Date)
	fmt.Fprintf(&b, "%s: %s\n", l.CustomerLabel, view.CustomerLabel)
	b.WriteString(textSeparator + "\n")
	for _, line := range view.Lines {
		fmt.Fprintf(&b, "- %s: %s × %s = %s\n",
			line.Name, formatPlain(line.Quantity), formatPlain(line.Price), line.TotalText)
	}
	b.WriteString(textSeparator + "\n")
	fmt.Fprintf(&b, "*%s: %s %s*\n", l.GrandTotal, view.GrandTotalText, view.CurrencySuffix)

	return b.String()
}

// qrPayload is the compact summary encoded in the print view QR code
func qrPayload(view *InvoiceView) string {
	return fmt.Sprintf("%s|%s|%s|%d|%s %s",
		view.ShopName, view.Date, view.CustomerLabel, len(view.Lines), view.GrandTotalText, view.CurrencySuffix)
}
