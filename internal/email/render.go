package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/samber/lo"
)

//go:embed templates/*
var templateFS embed.FS

var (
	invoiceHTMLTemplate = template.Must(template.ParseFS(templateFS, "templates/invoice.html"))
	invoiceTextTemplate = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/invoice.txt"))
)

type invoiceItemView struct {
	Description string
	Quantity    string
	UnitPrice   string
	Total       string
}

type invoiceView struct {
	InvoiceNumber  string
	ClientName     string
	CompanyName    string
	HasCompany     bool
	LogoURL        string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string
	TaxNumber      string
	Items          []invoiceItemView
	ShowSubtotal   bool
	Subtotal       string
	ShowTax        bool
	Tax            string
	Total          string
	DueDate        string
	Notes          string
}

// Subject returns the subject line for an invoice email
func Subject(data InvoiceEmailData) string {
	return fmt.Sprintf("Invoice %s from %s", data.Invoice.InvoiceNumber, companyName(data))
}

// RenderInvoiceHTML renders the invoice as a self-contained HTML document
func RenderInvoiceHTML(data InvoiceEmailData) (string, error) {
	var buf bytes.Buffer
	if err := invoiceHTMLTemplate.Execute(&buf, buildView(data)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderInvoiceText renders the plain text alternative of the invoice email
func RenderInvoiceText(data InvoiceEmailData) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTextTemplate.Execute(&buf, buildView(data)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func companyName(data InvoiceEmailData) string {
	if data.Company != nil && strings.TrimSpace(data.Company.Name) != "" {
		return data.Company.Name
	}
	return DefaultCompanyName
}

func buildView(data InvoiceEmailData) invoiceView {
	inv := data.Invoice
	currency := inv.Currency

	view := invoiceView{
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.ClientName,
		CompanyName:   companyName(data),
		Total:         types.FormatAmount(currency, inv.Total),
		Subtotal:      types.FormatAmount(currency, inv.Subtotal),
		Tax:           types.FormatAmount(currency, inv.Tax),
		ShowSubtotal:  !inv.Subtotal.Equal(inv.Total),
		ShowTax:       inv.Tax.IsPositive(),
		Notes:         lo.FromPtr(inv.Notes),
	}

	if inv.DueDate != nil {
		view.DueDate = types.FormatLongDate(*inv.DueDate)
	}

	if c := data.Company; c != nil {
		view.HasCompany = true
		view.LogoURL = lo.FromPtr(c.LogoURL)
		view.CompanyEmail = lo.FromPtr(c.Email)
		view.CompanyPhone = lo.FromPtr(c.Phone)
		view.TaxNumber = lo.FromPtr(c.TaxNumber)
		parts := lo.Filter([]string{
			lo.FromPtr(c.Address),
			lo.FromPtr(c.City),
			lo.FromPtr(c.State),
			lo.FromPtr(c.PostalCode),
			lo.FromPtr(c.Country),
		}, func(s string, _ int) bool { return strings.TrimSpace(s) != "" })
		view.CompanyAddress = strings.Join(parts, ", ")
	}

	view.Items = lo.Map(data.Items, func(item *invoice.InvoiceItem, _ int) invoiceItemView {
		return invoiceItemView{
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			UnitPrice:   types.FormatAmount(currency, item.UnitPrice),
			Total:       types.FormatAmount(currency, item.Total),
		}
	})

	return view
}
