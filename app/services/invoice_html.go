package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/skip2/go-qrcode"
)

const invoiceHTMLTemplate = `<div class="invoice" id="invoice-content" dir="{{.View.Labels.Direction}}">
<style>
.invoice { font-family: monospace; font-size: 14px; line-height: 1.6; }
.invoice .head { text-align: center; border-bottom: 2px solid #4b5563; padding-bottom: 16px; margin-bottom: 24px; }
.invoice .customer { margin-top: 8px; border: 1px dashed #4b5563; padding: 8px; border-radius: 4px; font-weight: bold; }
.invoice table { width: 100%; border-collapse: collapse; }
.invoice th, .invoice td { padding: 8px 0; }
.invoice td.qty, .invoice th.qty { text-align: center; }
.invoice .grand { display: flex; justify-content: space-between; border-top: 2px solid #4b5563; padding-top: 16px; margin-top: 24px; font-size: 20px; font-weight: bold; }
.invoice .qr { text-align: center; margin-top: 16px; }
.invoice .print-only { display: none; }
@media print {
  .no-print { display: none !important; }
  .invoice { color: #000; }
  .invoice .head, .invoice .grand { border-color: #000; }
  .invoice .print-only { display: flex; justify-content: space-between; align-items: flex-end; margin-top: 64px; padding: 0 32px; }
  .invoice .signature p { margin-bottom: 40px; font-weight: bold; }
  .invoice .signature div { width: 160px; border-bottom: 2px dotted #000; }
}
</style>
<div class="head">
  <h2>{{.View.ShopName}}</h2>
  <p><strong>{{.View.Title}}</strong></p>
  <p dir="ltr">{{.View.Date}}</p>
  <div class="customer">{{.View.CustomerLabel}}</div>
</div>
<table>
  <thead>
    <tr>
      <th>{{.View.Labels.ColItem}}</th>
      <th class="qty">{{.View.Labels.ColQuantity}}</th>
      <th>{{.View.Labels.ColPrice}}</th>
      <th>{{.View.Labels.ColTotal}}</th>
    </tr>
  </thead>
  <tbody>
  {{- range .View.Lines}}
    <tr data-id="{{.ID}}">
      <td>{{.Name}}</td>
      <td class="qty">{{.QuantityText}}{{if .UnitSuffix}} {{.UnitSuffix}}{{end}}</td>
      <td>{{.PriceText}}</td>
      <td><strong>{{.TotalText}}</strong></td>
    </tr>
  {{- end}}
  </tbody>
</table>
<div class="grand">
  <span>{{.View.Labels.GrandTotal}}:</span>
  <span>{{.View.GrandTotalText}} {{.View.CurrencySuffix}}</span>
</div>
{{- if .QRCode}}
<div class="qr"><img alt="QR" src="{{.QRCode}}" width="128" height="128"></div>
{{- end}}
<div class="print-only">
  <div class="signature"><p>{{.View.Labels.Recipient}}</p><div></div></div>
  <div class="signature"><p>{{.View.Labels.Management}}</p><div></div></div>
</div>
</div>`

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceHTMLTemplate))

// RenderInvoiceHTML renders the invoice fragment shown in the preview window.
// Signature blocks carry the print-only class and appear only on the print path.
func RenderInvoiceHTML(view *InvoiceView, includeQR bool) (string, error) {
	data := struct {
		View   *InvoiceView
		QRCode template.URL
	}{View: view}

	if includeQR {
		png, err := qrcode.Encode(qrPayload(view), qrcode.Medium, 128)
		if err != nil {
			return "", fmt.Errorf("failed to generate QR code: %w", err)
		}
		data.QRCode = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute invoice template: %w", err)
	}
	return buf.String(), nil
}
