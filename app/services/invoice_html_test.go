package services

import (
	"strings"
	"testing"

	"BakeryPOS/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvoiceHTML(t *testing.T) {
	view := BuildInvoice(sampleItems(), InvoiceOptions{ShopName: "Cookies Bakery", Now: fixedNow})

	html, err := RenderInvoiceHTML(view, false)
	require.NoError(t, err)

	assert.Contains(t, html, "Cookies Bakery")
	assert.Contains(t, html, "Sales invoice (retail)")
	assert.Contains(t, html, "2,500 SYP")
	assert.Contains(t, html, `class="print-only"`)
	assert.Contains(t, html, "Recipient")
	assert.Contains(t, html, "@media print")
	assert.NotContains(t, html, "data:image/png")
	assert.Equal(t, 2, strings.Count(html, "<tr data-id="))
}

func TestRenderInvoiceHTMLWithQR(t *testing.T) {
	view := BuildInvoice(sampleItems(), InvoiceOptions{Now: fixedNow})

	html, err := RenderInvoiceHTML(view, true)
	require.NoError(t, err)
	assert.Contains(t, html, `src="data:image/png;base64,`)
}

func TestRenderInvoiceHTMLEscapesNames(t *testing.T) {
	items := []models.SaleItem{{Name: "<script>alert(1)</script>", Quantity: 1, Price: 1, CustomerNumber: 1}}

	html, err := RenderInvoiceHTML(BuildInvoice(items, InvoiceOptions{Now: fixedNow}), false)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderInvoiceHTMLArabicIsRightToLeft(t *testing.T) {
	view := BuildInvoice(sampleItems(), InvoiceOptions{Language: "ar", Now: fixedNow})

	html, err := RenderInvoiceHTML(view, false)
	require.NoError(t, err)
	assert.Contains(t, html, `dir="rtl"`)
}
