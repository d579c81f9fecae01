// Package pdf renders invoices as PDF documents.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// InvoiceLine is a single billed line on the invoice.
type InvoiceLine struct {
	Description string
	Quantity    int
	UnitPrice   float64
	Total       float64
}

// InvoiceData carries everything needed to render an invoice PDF. Amounts
// are decimals; the caller converts from cents.
type InvoiceData struct {
	InvoiceNo      string
	ReceiptNo      string
	Date           string
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	CompanyTaxPin  string
	CustomerName   string
	CurrencySymbol string
	Lines          []InvoiceLine
	SubTotal       float64
	TaxName        string
	TaxRate        float64
	TaxAmount      float64
	Total          float64
}

// RenderInvoice renders the invoice as an A4 PDF and returns the bytes.
func RenderInvoice(data *InvoiceData) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Company header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(120, 10, data.CompanyName)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{data.CompanyAddress, data.CompanyPhone, data.CompanyEmail} {
		if line != "" {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}
	if data.CompanyTaxPin != "" {
		pdf.CellFormat(0, 5, "Tax PIN: "+data.CompanyTaxPin, "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)

	// Invoice metadata
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(30, 6, "Invoice No:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, data.InvoiceNo, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(30, 6, "Receipt No:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, data.ReceiptNo, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(30, 6, "Date:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, data.Date, "", 1, "L", false, 0, "")

	if data.CustomerName != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(30, 6, "Billed To:")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, data.CustomerName, "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)

	// Line items table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range data.Lines {
		pdf.CellFormat(90, 7, line.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, money(data.CurrencySymbol, line.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, money(data.CurrencySymbol, line.Total), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)

	// Totals block
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(145, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, money(data.CurrencySymbol, data.SubTotal), "", 1, "R", false, 0, "")

	if data.TaxAmount > 0 {
		taxLabel := data.TaxName
		if taxLabel == "" {
			taxLabel = "Tax"
		}
		pdf.CellFormat(145, 7, fmt.Sprintf("%s (%.1f%%)", taxLabel, data.TaxRate), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, money(data.CurrencySymbol, data.TaxAmount), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(145, 9, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 9, money(data.CurrencySymbol, data.Total), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, "Thank you for your business.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return &buf, nil
}

func money(symbol string, amount float64) string {
	if symbol == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
