package api

import (
	"log"
	stdhttp "net/http"

	intconfig "careline-backend/internal/config"
	h "careline-backend/internal/http/handlers"
	"careline-backend/internal/http/middleware"
	"careline-backend/internal/repositories"
	"careline-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	customerAuth := middleware.Auth(h.JWTSecret(), services.RoleCustomer)
	managerAuth := middleware.Auth(h.JWTSecret(), services.RoleManager)
	adminAuth := middleware.AdminAuth(repositories.AdminRepository{})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/manager/signup", h.ManagerSignup)
		auth.POST("/manager/login", h.ManagerLogin)
		auth.POST("/admin/login", h.AdminLogin)
		auth.POST("/admin/logout", h.AdminLogout)

		// Booking form lookups (public)
		api.GET("/address/search", h.SearchAddress)
		api.GET("/prices", h.ListPrices)
		api.GET("/managers/search", h.SearchManagers)

		// Customer requests; booking itself accepts guests
		requests := api.Group("/requests")
		requests.POST("", middleware.AuthOptional(h.JWTSecret(), services.RoleCustomer), h.CreateRequest)
		requests.GET("", customerAuth, h.ListMyRequests)
		requests.GET("/:id", customerAuth, h.GetMyRequest)
		requests.POST("/:id/cancel", customerAuth, h.CancelMyRequest)

		// Payments
		payments := api.Group("/payments")
		payments.POST("/confirm", h.ConfirmPayment)
		payments.GET("/:id/receipt", customerAuth, h.GetPaymentReceipt)

		// Manager app
		manager := api.Group("/manager")
		manager.Use(managerAuth)
		manager.GET("/requests", h.ListOpenRequests)
		manager.POST("/requests/:id/apply", h.ApplyToRequest)
		manager.GET("/applications", h.ListMyApplications)

		// Back office
		admin := api.Group("/admin")
		admin.Use(adminAuth)
		admin.GET("/requests", h.AdminListRequests)
		admin.GET("/requests/designated", h.AdminListDesignated)
		admin.GET("/requests/:id", h.AdminGetRequest)
		admin.POST("/requests/:id/status", h.AdminSetRequestStatus)
		admin.POST("/requests/:id/cancel", h.AdminCancelRequest)
		admin.POST("/requests/:id/designated/approve", h.AdminApproveDesignated)
		admin.POST("/requests/:id/designated/reject", h.AdminRejectDesignated)
		admin.POST("/applications/:id/accept", h.AdminAcceptApplication)
		admin.POST("/applications/:id/reject", h.AdminRejectApplication)
		admin.GET("/managers", h.AdminListManagers)
		admin.POST("/managers/:id/approval", h.AdminSetManagerApproval)
		admin.GET("/payments", h.AdminListPayments)
		admin.POST("/payments/:id/refund", h.AdminRefundPayment)
		admin.POST("/payments/:id/partial-refund", h.AdminPartialRefundPayment)
		admin.GET("/prices", h.AdminListPrices)
		admin.POST("/prices", h.AdminCreatePrice)
		admin.PUT("/prices/:id", h.AdminUpdatePrice)
	}

	h.SetRouter(r)
	return r
}
