package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/apperror"
	"github.com/kamandelane/tillpoint-api/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	saleRepo    repository.SaleRepository
	companyRepo repository.CompanyRepository
	printerType string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	companyRepo repository.CompanyRepository,
	printerType string,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		saleRepo:    saleRepo,
		companyRepo: companyRepo,
		printerType: printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "PRINTER TEST",
			Address:   "Test Address",
			Phone:     "+000 000 000 000",
		},
		ReceiptNo: "TEST-001",
		Date:      "Test Date",
		Cashier:   "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		SubTotal: 20.00,
		Tax:      0.00,
		Total:    20.00,
		Paid:     20.00,
		Change:   0.00,
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintSaleReceipt fetches a sale (with items) and prints its receipt.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := &entity.Receipt{
		ReceiptNo:     sale.ReceiptNo,
		Date:          sale.SaleDate.Format("2006-01-02 15:04"),
		Cashier:       sale.User.FullName(),
		PaymentMethod: sale.PaymentMethod.String(),
		Total:         float64(sale.Total) / 100,
		Paid:          float64(sale.PaymentAmount) / 100,
		Change:        float64(sale.Change) / 100,
	}

	company, err := s.companyRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if company != nil {
		receipt.Header.StoreName = company.Name
		if company.Address != nil {
			receipt.Header.Address = *company.Address
		}
		if company.Phone != nil {
			receipt.Header.Phone = *company.Phone
		}
		if company.TaxPin != nil {
			receipt.Header.TaxID = *company.TaxPin
		}
	} else {
		receipt.Header.StoreName = "Receipt"
	}

	if sale.Invoice != nil {
		receipt.SubTotal = float64(sale.Invoice.SubTotal) / 100
		receipt.Tax = float64(sale.Invoice.TaxAmount) / 100
	} else {
		receipt.SubTotal = receipt.Total
	}

	if sale.Customer != nil {
		receipt.Customer = sale.Customer.Name
	}

	for _, item := range sale.Items {
		line := entity.ReceiptItem{
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.Total) / 100,
		}
		if item.Product.Name != "" {
			line.Name = item.Product.Name
		} else {
			line.Name = "Product"
		}
		receipt.Items = append(receipt.Items, line)
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (sale %s): %v", saleID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Receipt info
	doc.KeyValue("Receipt:", r.ReceiptNo).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	if r.Tax > 0 {
		doc.KeyValue("Tax:", fmt.Sprintf("%.2f", r.Tax))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	if r.Paid > 0 {
		doc.KeyValue("Paid:", fmt.Sprintf("%.2f", r.Paid))
	}
	if r.Change > 0 {
		doc.KeyValue("Change:", fmt.Sprintf("%.2f", r.Change))
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for shopping with us!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
