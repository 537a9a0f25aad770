package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careline-backend/internal/http/middleware"
	"careline-backend/internal/repositories"
	"careline-backend/internal/services"
)

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		PaymentRepo: repositories.PaymentRepository{},
		RequestRepo: repositories.ServiceRequestRepository{},
		Gateway:     paymentGateway(),
		RequestID:   middleware.GetRequestID(c),
	}
}

type confirmPaymentRequest struct {
	PaymentKey string `json:"payment_key"`
	OrderID    string `json:"order_id"`
	Amount     int64  `json:"amount"`
}

// POST /api/payments/confirm — called after the front-end completes the
// gateway widget flow.
func ConfirmPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	payment, err := paymentService(c).Confirm(c.Request.Context(), req.PaymentKey, req.OrderID, req.Amount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "payment": payment})
}

// GET /api/payments/:id/receipt — row-scoped to the authenticated
// customer, like the request detail endpoints.
func GetPaymentReceipt(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	id, ok := PathID(c)
	if !ok {
		return
	}
	svc := services.ReceiptService{
		PaymentRepo: repositories.PaymentRepository{},
		RequestRepo: repositories.ServiceRequestRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
	data, filename, err := svc.Generate(id, int64(p.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
