package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careline-backend/internal/gateway"
	"careline-backend/internal/http/middleware"
	"careline-backend/internal/repositories"
	"careline-backend/internal/services"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		RequestRepo: repositories.ServiceRequestRepository{},
		ManagerRepo: repositories.ManagerRepository{},
		Pricing:     services.PricingService{PriceRepo: repositories.PriceRepository{}},
		RequestID:   middleware.GetRequestID(c),
	}
}

func cancellationService(c *gin.Context) services.CancellationService {
	return services.CancellationService{
		RequestRepo:     repositories.ServiceRequestRepository{},
		ApplicationRepo: repositories.ApplicationRepository{},
		PaymentRepo:     repositories.PaymentRepository{},
		Gateway:         paymentGateway(),
		Notifier:        notifier(),
		RequestID:       middleware.GetRequestID(c),
	}
}

// POST /api/requests — guest bookings allowed, so auth is optional;
// when a customer token is present the request is bound to them.
func CreateRequest(c *gin.Context) {
	var req services.BookingInput
	if !BindJSONOrError(c, &req) {
		return
	}
	if p, ok := middleware.GetPrincipal(c); ok {
		id := int64(p.UserID)
		req.CustomerID = &id
	}

	created, err := bookingService(c).Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "request": created})
}

// GET /api/requests — row-scoped to the authenticated customer.
func ListMyRequests(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	repo := repositories.ServiceRequestRepository{}
	out, err := repo.ListByCustomer(int64(p.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "requests": out})
}

// GET /api/requests/:id — owner-scoped detail with payment summary.
func GetMyRequest(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	id, ok := PathID(c)
	if !ok {
		return
	}

	repo := repositories.ServiceRequestRepository{}
	req, err := repo.GetForCustomer(id, int64(p.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	payment, err := repositories.PaymentRepository{}.GetByRequest(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "request": req, "payment": payment})
}

// POST /api/requests/:id/cancel — customer cancellation saga.
func CancelMyRequest(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	id, ok := PathID(c)
	if !ok {
		return
	}

	// scope check before the privileged saga runs
	if _, err := (repositories.ServiceRequestRepository{}).GetForCustomer(id, int64(p.UserID)); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := cancellationService(c).Cancel(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "request_id": id})
}

// GET /api/address/search
func SearchAddress(c *gin.Context) {
	client := addresses()
	if client == nil {
		respondError(c, http.StatusServiceUnavailable, "unavailable", "address lookup not configured")
		return
	}
	results, err := client.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if results == nil {
		results = []gateway.AddressCandidate{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "results": results})
}

// GET /api/prices — active price table for the booking form.
func ListPrices(c *gin.Context) {
	prices, err := repositories.PriceRepository{}.List(true)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "prices": prices})
}

// GET /api/managers/search — designation lookup for the booking form.
func SearchManagers(c *gin.Context) {
	out, err := repositories.ManagerRepository{}.Search(c.Query("keyword"), 10)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "managers": out})
}
