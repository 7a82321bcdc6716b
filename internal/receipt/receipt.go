package receipt

import (
	"bytes"
	"fmt"

	"medieaze-storefront/internal/model"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Generate renders a printable PDF receipt for one order, with a QR code
// carrying the order reference for pickup/service verification.
func Generate(order *model.OrderHistoryItem) ([]byte, error) {
	qrPayload := fmt.Sprintf("%s|%.2f|%s", order.ID, order.Total, order.Date.Format("2006-01-02"))
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "MediEaze Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order ID: %s", order.ID))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", order.Date.Format("02 Jan 2006 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Payment method: %s", order.Method))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, line := range order.Items {
		name := line.Name
		if line.PurchaseType == model.PurchaseTypeRent {
			name += " (rent)"
		}
		pdf.CellFormat(90, 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", line.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", line.Price*float64(line.Quantity)), "1", 1, "R", false, 0, "")
	}

	if order.Savings > 0 {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(150, 8, "You saved", "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", order.Savings), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(150, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", order.Total), "1", 1, "R", false, 0, "")
	pdf.Ln(8)

	if order.ShippingAddress != nil {
		addr := order.ShippingAddress
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 8, "Ship to")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("%s, %s", addr.FullName, addr.MobileNumber))
		pdf.Ln(5)
		pdf.Cell(0, 6, addr.AddressLine1)
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("%s, %s %s", addr.City, addr.State, addr.Pincode))
		pdf.Ln(8)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("order-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("order-qr", 160, 10, 35, 35, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return buf.Bytes(), nil
}
