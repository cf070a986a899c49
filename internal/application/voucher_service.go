package application

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"github.com/nilgiri-travels/service-booking/internal/domain"
	bookingDomain "github.com/nilgiri-travels/service-booking/internal/domain/booking"
	"github.com/nilgiri-travels/service-booking/internal/domain/catalog"
	"github.com/nilgiri-travels/service-booking/internal/domain/pricing"
)

// VoucherService renders booking vouchers as PDF documents for confirmed
// bookings.
type VoucherService struct {
	bookings bookingDomain.BookingRepository
	packages catalog.PackageRepository
	logger   *zap.Logger
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(bookings bookingDomain.BookingRepository, packages catalog.PackageRepository, logger *zap.Logger) *VoucherService {
	return &VoucherService{bookings: bookings, packages: packages, logger: logger}
}

// GenerateVoucher renders the voucher PDF for a booking, addressed by its
// booking number. Only confirmed or completed bookings get vouchers.
func (s *VoucherService) GenerateVoucher(ctx context.Context, bookingNumber string) ([]byte, error) {
	bk, err := s.bookings.FindByNumber(ctx, bookingNumber)
	if err != nil {
		return nil, err
	}
	if bk.Status() != bookingDomain.StatusConfirmed && bk.Status() != bookingDomain.StatusCompleted {
		return nil, domain.NewInvalidStateError(string(bk.Status()), "voucher")
	}

	packageTitle := ""
	if pkg, err := s.packages.FindByID(ctx, bk.PackageID()); err == nil {
		packageTitle = pkg.Title
	}

	pdf, err := buildVoucherPDF(bk, packageTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to render voucher: %w", err)
	}

	s.logger.Info("voucher generated", zap.String("booking_number", bk.BookingNumber()))
	return pdf, nil
}

func buildVoucherPDF(bk *bookingDomain.Booking, packageTitle string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher "+bk.BookingNumber(), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Nilgiri Travels")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, "Booking Voucher")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, bk.BookingNumber())
	pdf.Ln(12)

	rows := [][2]string{
		{"Guest", bk.CustomerName()},
		{"Phone", bk.Phone()},
		{"Package", packageTitle},
		{"Vehicle", bk.VehicleType().DisplayName()},
		{"Travel date", bk.TravelDate().Format("02 Jan 2006")},
		{"Pickup time", bk.TravelTime()},
		{"Pickup location", bk.PickupLocation()},
		{"Season", bk.SeasonName()},
		{"Status", string(bk.Status())},
	}
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetDrawColor(150, 150, 150)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(4)

	// gofpdf's core fonts cannot encode the rupee sign, so amounts are
	// prefixed with "Rs." here instead of the symbol used on the site.
	amounts := [][2]string{
		{"Total fare", rupeeText(bk.TotalAmount())},
		{"Advance paid", rupeeText(bk.AdvanceAmount())},
		{"Balance due to driver", rupeeText(bk.RemainingAmount())},
	}
	for _, row := range amounts {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Please show this voucher to your driver at pickup. "+
		"The balance is payable in cash or UPI at the end of the trip.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rupeeText(amount int64) string {
	return "Rs. " + strings.TrimPrefix(pricing.FormatPrice(amount), "₹")
}
