package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
	"careline-backend/internal/http/middleware"
	"careline-backend/internal/repositories"
	"careline-backend/internal/services"
	"careline-backend/internal/utils"
)

// auditAdmin records which admin performed a back-office action.
func auditAdmin(c *gin.Context, action, detail string) {
	if adminID, ok := middleware.GetAdminID(c); ok {
		utils.LogEvent(middleware.GetRequestID(c), "admin", action,
			fmt.Sprintf("admin_id=%d %s", adminID, detail))
	}
}

func lifecycleService(c *gin.Context) services.LifecycleService {
	return services.LifecycleService{
		RequestRepo: repositories.ServiceRequestRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
}

// GET /api/admin/requests
func AdminListRequests(c *gin.Context) {
	filter := models.RequestFilter{
		Status:   domain.RequestStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
		Page:     QueryInt(c, "page", 1),
		PageSize: QueryInt(c, "page_size", 20),
	}
	if filter.Status != "" && !domain.ValidRequestStatus(filter.Status) {
		respondError(c, http.StatusBadRequest, "validation_error", "unknown status filter")
		return
	}

	out, total, err := repositories.ServiceRequestRepository{}.List(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "requests": out, "total": total,
		"page": filter.Page, "page_size": filter.PageSize})
}

// GET /api/admin/requests/designated — the pre-chosen-manager queue.
func AdminListDesignated(c *gin.Context) {
	filter := models.RequestFilter{
		Designated: true,
		Page:       QueryInt(c, "page", 1),
		PageSize:   QueryInt(c, "page_size", 20),
	}
	out, total, err := repositories.ServiceRequestRepository{}.List(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "requests": out, "total": total})
}

// GET /api/admin/requests/:id — detail with applications and payment.
func AdminGetRequest(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	req, err := repositories.ServiceRequestRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	apps, err := repositories.ApplicationRepository{}.ListByRequest(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	payment, err := repositories.PaymentRepository{}.GetByRequest(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "request": req, "applications": apps, "payment": payment})
}

type statusChangeRequest struct {
	Status string `json:"status"`
}

// POST /api/admin/requests/:id/status — lifecycle transition.
func AdminSetRequestStatus(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req statusChangeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	target := domain.RequestStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	updated, err := lifecycleService(c).Transition(id, target)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "request": updated})
}

// POST /api/admin/requests/:id/cancel
func AdminCancelRequest(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := cancellationService(c).Cancel(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "request_id": id})
}

// POST /api/admin/requests/:id/designated/approve
func AdminApproveDesignated(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := matchingService(c).ApproveDesignated(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "request_id": id})
}

// POST /api/admin/requests/:id/designated/reject
func AdminRejectDesignated(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := matchingService(c).RejectDesignated(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "request_id": id})
}

// POST /api/admin/applications/:id/accept
func AdminAcceptApplication(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := matchingService(c).Accept(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "application_id": id})
}

// POST /api/admin/applications/:id/reject
func AdminRejectApplication(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := matchingService(c).Reject(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "application_id": id})
}

// GET /api/admin/managers — signup vetting queue.
func AdminListManagers(c *gin.Context) {
	status := domain.ManagerApproval(strings.ToLower(strings.TrimSpace(c.DefaultQuery("status", "pending"))))
	switch status {
	case domain.ManagerPendingApproval, domain.ManagerApproved, domain.ManagerRejected:
	default:
		respondError(c, http.StatusBadRequest, "validation_error", "unknown approval status")
		return
	}
	out, err := repositories.ManagerRepository{}.ListByApproval(status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "managers": out})
}

type approvalRequest struct {
	Approve bool `json:"approve"`
}

// POST /api/admin/managers/:id/approval
func AdminSetManagerApproval(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req approvalRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	status := domain.ManagerRejected
	if req.Approve {
		status = domain.ManagerApproved
	}
	if err := (repositories.ManagerRepository{}).SetApproval(id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	auditAdmin(c, "manager_approval", fmt.Sprintf("manager_id=%d status=%s", id, status))
	c.JSON(http.StatusOK, gin.H{"ok": true, "manager_id": id, "approval_status": status})
}

// GET /api/admin/payments
func AdminListPayments(c *gin.Context) {
	out, total, err := repositories.PaymentRepository{}.List(QueryInt(c, "page", 1), QueryInt(c, "page_size", 20))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "payments": out, "total": total})
}

type refundRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// POST /api/admin/payments/:id/refund — full refund.
func AdminRefundPayment(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req refundRequest
	if c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}
	payment, err := paymentService(c).FullRefund(c.Request.Context(), id, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	auditAdmin(c, "full_refund", fmt.Sprintf("payment_id=%d", id))
	c.JSON(http.StatusOK, gin.H{"ok": true, "payment": payment})
}

// POST /api/admin/payments/:id/partial-refund
func AdminPartialRefundPayment(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req refundRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	payment, err := paymentService(c).PartialRefund(c.Request.Context(), id, req.Amount, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	auditAdmin(c, "partial_refund", fmt.Sprintf("payment_id=%d amount=%d", id, req.Amount))
	c.JSON(http.StatusOK, gin.H{"ok": true, "payment": payment})
}
