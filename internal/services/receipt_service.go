package services

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
	"careline-backend/internal/repositories"
	"careline-backend/internal/utils"
)

// ReceiptService renders a PDF receipt for a settled payment.
type ReceiptService struct {
	PaymentRepo repositories.PaymentRepository
	RequestRepo repositories.ServiceRequestRepository
	RequestID   string
}

// Generate renders the receipt for a payment on one of the customer's
// own requests. Payments on other customers' requests (or guest
// bookings, which carry no customer id) come back as not found.
func (s ReceiptService) Generate(paymentID, customerID int64) ([]byte, string, error) {
	p, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, "", err
	}
	if p.ServiceRequestID == nil {
		return nil, "", domain.NotFoundError{Resource: "payment"}
	}
	req, err := s.RequestRepo.GetForCustomer(*p.ServiceRequestID, customerID)
	if err != nil {
		return nil, "", err
	}
	if p.Status == domain.PaymentPending || p.Status == domain.PaymentFailed {
		return nil, "", domain.ConflictError{Resource: "payment", Msg: "no settled charge to print"}
	}

	utils.LogEvent(s.RequestID, "receipt", "generate", fmt.Sprintf("payment_id=%d", paymentID))
	data, err := buildReceiptPDF(p, req)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render receipt", Err: err}
	}
	return data, fmt.Sprintf("receipt-%s.pdf", p.OrderID), nil
}

func buildReceiptPDF(p models.Payment, req models.ServiceRequest) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "CareLine Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	line("Order ID", p.OrderID)
	line("Payment key", p.PaymentKey)
	line("Status", string(p.Status))
	if p.Method != "" {
		line("Method", p.Method)
	}
	if p.ApprovedAt != nil {
		line("Approved at", p.ApprovedAt.Format("2006-01-02 15:04"))
	}
	pdf.Ln(2)

	if req.ID != 0 {
		line("Service", req.ServiceType)
		line("Date", fmt.Sprintf("%s %s", req.ServiceDate, req.StartTime))
		line("Duration", fmt.Sprintf("%d hours", req.DurationMinutes/60))
		line("Address", req.Address)
		pdf.Ln(2)
	}

	line("Amount", "KRW "+utils.Comma(p.Amount))
	if p.RefundAmount > 0 {
		line("Refunded", "KRW "+utils.Comma(p.RefundAmount))
		line("Balance", "KRW "+utils.Comma(p.Remaining()))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
