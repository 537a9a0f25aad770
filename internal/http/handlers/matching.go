package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careline-backend/internal/domain"
	"careline-backend/internal/http/middleware"
	"careline-backend/internal/repositories"
	"careline-backend/internal/services"
)

func matchingService(c *gin.Context) services.MatchingService {
	return services.MatchingService{
		RequestRepo:     repositories.ServiceRequestRepository{},
		ApplicationRepo: repositories.ApplicationRepository{},
		ManagerRepo:     repositories.ManagerRepository{},
		Notifier:        notifier(),
		RequestID:       middleware.GetRequestID(c),
	}
}

// managerID resolves the caller's manager profile from the JWT user id.
func managerID(c *gin.Context) (int64, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "manager login required")
		return 0, false
	}
	m, err := repositories.ManagerRepository{}.GetByUserID(int64(p.UserID))
	if err != nil {
		RespondDomainError(c, domain.UnauthorizedError{Msg: "manager profile not found"})
		return 0, false
	}
	return m.ID, true
}

type applyRequest struct {
	Message string `json:"message"`
}

// POST /api/manager/requests/:id/apply
func ApplyToRequest(c *gin.Context) {
	mid, ok := managerID(c)
	if !ok {
		return
	}
	requestID, ok := PathID(c)
	if !ok {
		return
	}
	var req applyRequest
	if c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}

	app, err := matchingService(c).Apply(mid, requestID, req.Message)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "application": app})
}

// GET /api/manager/requests — the open pool a manager can apply to.
func ListOpenRequests(c *gin.Context) {
	if _, ok := managerID(c); !ok {
		return
	}
	out, err := repositories.ServiceRequestRepository{}.ListOpenPool()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "requests": out})
}

// GET /api/manager/applications
func ListMyApplications(c *gin.Context) {
	mid, ok := managerID(c)
	if !ok {
		return
	}
	out, err := repositories.ApplicationRepository{}.ListByManager(mid)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "applications": out})
}
