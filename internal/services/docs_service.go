package services

import (
	"bytes"
	"fmt"
	"strings"

	"nandighosh/internal/domain"
	"nandighosh/internal/domain/models"
	"nandighosh/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// DocsService renders booking receipts as PDF.
type DocsService struct {
	CompanyName string
	SupportLine string
	RequestID   string
}

// BuildReceipt renders the receipt of a confirmed booking. The QR code
// encodes the booking reference.
func (s DocsService) BuildReceipt(conf models.BookingConfirmation) ([]byte, string, error) {
	if strings.TrimSpace(conf.Reference) == "" {
		return nil, "", domain.ValidationError{Field: "reference", Msg: "required"}
	}
	utils.LogEvent(s.RequestID, "docs", "build_receipt", "reference="+conf.Reference)

	qrPNG, err := qrcode.Encode(conf.Reference, qrcode.Medium, 256)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to generate QR code", Err: err}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, safe(s.CompanyName, "Nandighosh Tours & Travels"))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, "BOOKING RECEIPT")
	pdf.Ln(14)

	lines := []string{
		fmt.Sprintf("Reference      : %s", conf.Reference),
		fmt.Sprintf("Route          : %s", safe(conf.Route, "-")),
		fmt.Sprintf("Travel date    : %s", utils.FormatLongDate(conf.Date)),
		fmt.Sprintf("Passengers     : %d", conf.Passengers),
		fmt.Sprintf("Name           : %s", safe(conf.Name, "-")),
		fmt.Sprintf("Phone          : %s", safe(conf.Phone, "-")),
		fmt.Sprintf("Email          : %s", safe(conf.Email, "-")),
		fmt.Sprintf("Price per seat : %s", utils.FormatRupeeASCII(conf.PricePerSeat)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Total          : "+utils.FormatRupeeASCII(conf.Total))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	pdf.SetFont("Helvetica", "I", 10)
	note := "Please show this receipt when boarding."
	if line := strings.TrimSpace(s.SupportLine); line != "" {
		note += " Support: " + line
	}
	pdf.MultiCell(0, 6, note, "", "", false)
	pdf.Ln(2)
	pdf.Cell(0, 6, "Confirmed at "+conf.ConfirmedAt.Format("2006-01-02 15:04 MST"))

	if err := pdf.Error(); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render receipt", Err: err}
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render receipt", Err: err}
	}

	filename := fmt.Sprintf("RECEIPT_%s_%s.pdf", safeFilenamePart(conf.Reference), safeFilenamePart(conf.Name))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
