package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careline-backend/internal/http/middleware"
	"careline-backend/internal/repositories"
	"careline-backend/internal/services"
)

func authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		UserRepo:    repositories.UserRepository{},
		ManagerRepo: repositories.ManagerRepository{},
		AdminRepo:   repositories.AdminRepository{},
		JWTSecret:   JWTSecret(),
		RequestID:   middleware.GetRequestID(c),
	}
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}
	user, err := authService(c).RegisterCustomer(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token, user, err := authService(c).Login(req.Email, req.Password, services.RoleCustomer)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": user})
}

// POST /api/auth/manager/signup
func ManagerSignup(c *gin.Context) {
	var req services.ManagerSignupInput
	if !BindJSONOrError(c, &req) {
		return
	}
	manager, err := authService(c).ManagerSignup(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "manager": manager})
}

// POST /api/auth/manager/login
func ManagerLogin(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token, user, err := authService(c).Login(req.Email, req.Password, services.RoleManager)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": user})
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/admin/login
func AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token, err := authService(c).AdminLogin(req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	// HttpOnly session cookie; 12h, matches the server-side expiry
	c.SetCookie(middleware.AdminSessionCookie, token, 12*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/auth/admin/logout
func AdminLogout(c *gin.Context) {
	if token, err := c.Cookie(middleware.AdminSessionCookie); err == nil && token != "" {
		_ = authService(c).AdminLogout(token)
	}
	c.SetCookie(middleware.AdminSessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
