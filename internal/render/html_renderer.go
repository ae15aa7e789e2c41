package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

// Template identifiers
const (
	TemplateClassic = "classic"
	TemplateCompact = "compact"
)

// HTMLRenderer renders invoices to self-contained HTML documents from a
// fixed registry of templates.
type HTMLRenderer struct {
	templates map[string]*template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		},
		"datep": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		},
		"str": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}

	templates := make(map[string]*template.Template)
	for id, body := range map[string]string{
		TemplateClassic: classicTemplate,
		TemplateCompact: compactTemplate,
	} {
		t, err := template.New(id).Funcs(funcs).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", id, err)
		}
		templates[id] = t
	}
	return &HTMLRenderer{templates: templates}, nil
}

// TemplateIDs lists the registered template identifiers.
func (r *HTMLRenderer) TemplateIDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	return ids
}

func (r *HTMLRenderer) Render(data DocumentData, templateID string) ([]byte, error) {
	t, ok := r.templates[templateID]
	if !ok {
		return nil, fmt.Errorf("unknown document template %q", templateID)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const classicTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Invoice.InvoiceNo}}</title>
  <style>
    * { box-sizing: border-box; }
    body { margin: 0; padding: 32px; font-family: "Helvetica Neue", Arial, sans-serif; color: #111827; }
    .doc { max-width: 860px; margin: 0 auto; }
    .header { display: flex; justify-content: space-between; border-bottom: 2px solid #1f2937; padding-bottom: 16px; margin-bottom: 24px; }
    .brand img { max-height: 56px; }
    .meta { text-align: right; font-size: 14px; }
    .meta .label { color: #6b7280; text-transform: uppercase; font-size: 11px; letter-spacing: 0.04em; }
    .parties { display: flex; justify-content: space-between; margin-bottom: 24px; font-size: 14px; }
    table { width: 100%; border-collapse: collapse; font-size: 13px; }
    th, td { padding: 8px; border-bottom: 1px solid #e5e7eb; text-align: left; vertical-align: top; }
    th { text-transform: uppercase; font-size: 10px; letter-spacing: 0.04em; color: #6b7280; }
    td.num, th.num { text-align: right; }
    .totals { width: 320px; margin-left: auto; margin-top: 16px; font-size: 14px; }
    .totals td { padding: 4px 8px; border: none; }
    .totals .grand { font-weight: bold; border-top: 2px solid #1f2937; }
    .footer { margin-top: 32px; border-top: 1px solid #e5e7eb; padding-top: 16px; font-size: 12px; color: #6b7280; }
  </style>
</head>
<body>
  <div class="doc">
    <div class="header">
      <div class="brand">
        {{if .LogoDataURI}}<img src="{{.LogoDataURI}}" alt="logo" />{{end}}
        <h2>{{.Org.CompanyName}}</h2>
        <div>{{str .Org.Address}}</div>
        {{if .Org.GSTIN}}<div>GSTIN: {{str .Org.GSTIN}}</div>{{end}}
      </div>
      <div class="meta">
        <div class="label">Tax Invoice</div>
        <div><strong>{{.Invoice.InvoiceNo}}</strong></div>
        <div class="label">Issue Date</div>
        <div>{{date .Invoice.IssueDate}}</div>
        <div class="label">Due Date</div>
        <div>{{date .Invoice.DueDate}}</div>
      </div>
    </div>

    <div class="parties">
      <div>
        <div class="label">Billed To</div>
        <strong>{{.Client.Name}}</strong>
        <div>{{str .Client.BillingAddress}}</div>
        {{if .Client.GSTIN}}<div>GSTIN: {{str .Client.GSTIN}}</div>{{end}}
      </div>
      <div>
        <div class="label">Campaign</div>
        <div>{{.Campaign.Name}}</div>
        <div>{{date .Campaign.StartDate}} &ndash; {{date .Campaign.EndDate}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th>#</th><th>Location</th><th>Media</th><th>Size</th>
          <th>Period</th><th>HSN/SAC</th><th class="num">Rate</th><th class="num">Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Position}}</td>
          <td>{{str .Location}}{{if .Area}}, {{str .Area}}{{end}}{{if .Direction}}<br /><small>{{str .Direction}}</small>{{end}}</td>
          <td>{{str .MediaType}}{{if .Illumination}} ({{str .Illumination}}){{end}}</td>
          <td>{{str .Dimensions}}</td>
          <td>{{datep .BookingStart}}{{if .BookingEnd}} &ndash; {{datep .BookingEnd}}{{end}}</td>
          <td>{{str .HSNSAC}}</td>
          <td class="num">{{money .Rate}}</td>
          <td class="num">{{money .Amount}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <table class="totals">
      <tr><td>Subtotal</td><td class="num">{{money .Invoice.SubTotal}}</td></tr>
      <tr><td>GST ({{.Invoice.GSTPercent}}%)</td><td class="num">{{money .Invoice.GSTAmount}}</td></tr>
      <tr class="grand"><td>Total</td><td class="num">{{money .Invoice.TotalAmount}}</td></tr>
      <tr><td>Paid</td><td class="num">{{money .Invoice.AmountPaid}}</td></tr>
      <tr><td>Balance Due</td><td class="num">{{money .Invoice.BalanceDue}}</td></tr>
    </table>

    <div class="footer">
      {{if .Org.BankName}}<div>Bank: {{str .Org.BankName}} &middot; A/C: {{str .Org.BankAccountNo}} &middot; IFSC: {{str .Org.BankIFSC}}</div>{{end}}
      {{if .Invoice.Notes}}<div>{{str .Invoice.Notes}}</div>{{end}}
    </div>
  </div>
</body>
</html>`

const compactTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Invoice.InvoiceNo}}</title>
  <style>
    body { margin: 0; padding: 24px; font-family: Arial, sans-serif; color: #111; font-size: 12px; }
    .head { border-bottom: 1px solid #000; margin-bottom: 12px; padding-bottom: 8px; }
    table { width: 100%; border-collapse: collapse; }
    th, td { padding: 4px 6px; border-bottom: 1px solid #ddd; text-align: left; }
    td.num, th.num { text-align: right; }
    .totals { margin-top: 8px; text-align: right; }
  </style>
</head>
<body>
  <div class="head">
    <strong>{{.Org.CompanyName}}</strong> &middot; Invoice {{.Invoice.InvoiceNo}} &middot; {{date .Invoice.IssueDate}}
    <br />To: {{.Client.Name}}
  </div>
  <table>
    <thead>
      <tr><th>#</th><th>Description</th><th>Period</th><th class="num">Amount</th></tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td>{{.Position}}</td>
        <td>{{if .Location}}{{str .Location}}{{else}}{{str .Description}}{{end}}</td>
        <td>{{datep .BookingStart}}{{if .BookingEnd}} &ndash; {{datep .BookingEnd}}{{end}}</td>
        <td class="num">{{money .Amount}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <div class="totals">
    Subtotal {{money .Invoice.SubTotal}} &middot; GST {{money .Invoice.GSTAmount}} &middot;
    <strong>Total {{money .Invoice.TotalAmount}}</strong>
  </div>
</body>
</html>`
