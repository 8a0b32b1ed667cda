package invoice

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

const dateLayout = "2006-01-02"

// RenderPDF prints the invoice on a single A4 page.
func RenderPDF(inv Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.Number, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Invoice no : "+inv.Number)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Issued     : "+inv.IssuedAt.Format("2006-01-02 15:04"))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Booking    : #%d (%s)", inv.BookingNumber, inv.Status))
	pdf.Ln(10)

	party(pdf, "From", inv.Company)
	party(pdf, "Billed to", inv.Customer)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rental")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("%s, %s to %s", dash(inv.Vehicle), inv.PickupDate.Format(dateLayout), inv.DropDate.Format(dateLayout)), "", "", false)
	pdf.Ln(2)

	fb := inv.Financials
	row(pdf, fmt.Sprintf("%d day(s) x %s", inv.Days, inv.money(inv.DailyRate)), inv.money(fb.Subtotal))
	if !fb.CouponDiscount.IsZero() {
		row(pdf, "Coupon "+inv.CouponCode, "-"+inv.money(fb.CouponDiscount))
	}
	row(pdf, fmt.Sprintf("VAT %s%%", inv.VATRate.String()), inv.money(fb.VATAmount))

	if inv.ExtensionDays > 0 {
		row(pdf, fmt.Sprintf("Extension %d day(s) x %s", inv.ExtensionDays, inv.money(inv.DailyRate)), inv.money(fb.ExtensionSubtotal))
		if !fb.ExtensionCouponDiscount.IsZero() {
			row(pdf, "Extension coupon", "-"+inv.money(fb.ExtensionCouponDiscount))
		}
		row(pdf, "Extension VAT", inv.money(fb.ExtensionVATAmount))
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	row(pdf, "Grand total", inv.money(fb.GrandTotal))
	pdf.SetFont("Helvetica", "", 11)
	if !fb.DepositAmount.IsZero() {
		row(pdf, "Security deposit", inv.money(fb.DepositAmount))
	}
	row(pdf, "Paid", inv.money(inv.AmountPaid))
	if inv.CancelledAt != nil {
		row(pdf, "Cancelled "+inv.CancelledAt.Format(dateLayout)+", refundable", inv.money(fb.RefundableAmount))
	}

	if len(inv.Payments) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Payments")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, p := range inv.Payments {
			row(pdf, fmt.Sprintf("%s  %s  %s  %s", p.PaidAt.Format(dateLayout), dash(p.Reference), dash(p.Method), p.Status), inv.money(p.Amount))
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func party(pdf *gofpdf.Fpdf, title string, p Party) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, title+":")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{dash(p.Name), p.Address, p.Email, p.Phone} {
		if line == "" {
			continue
		}
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	if p.VATNumber != "" {
		pdf.Cell(0, 6, "VAT no: "+p.VATNumber)
		pdf.Ln(6)
	}
	pdf.Ln(4)
}

func row(pdf *gofpdf.Fpdf, label, amount string) {
	pdf.CellFormat(140, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, amount, "", 1, "R", false, 0, "")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
