package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"careline-backend/internal/domain"
	"careline-backend/internal/repositories"
)

const (
	principalKey = "principal"
	adminIDKey   = "admin_id"

	// AdminSessionCookie carries the server-side admin session token.
	AdminSessionCookie = "careline_admin_session"
)

// Auth validates a bearer JWT and requires the given role. The
// principal is stored in the context for handlers.
func Auth(secret []byte, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "authorization header required")
			return
		}
		tokenString := header
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			tokenString = header[7:]
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid token claims")
			return
		}
		claimRole, _ := claims["role"].(string)
		if claimRole != role {
			abortUnauthorized(c, "wrong role for this endpoint")
			return
		}
		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			abortUnauthorized(c, "invalid token claims")
			return
		}

		name, _ := claims["name"].(string)
		phone, _ := claims["phone"].(string)
		c.Set(principalKey, domain.Principal{
			UserID: domain.ID(userID),
			Role:   claimRole,
			Name:   name,
			Phone:  phone,
		})
		c.Next()
	}
}

// AuthOptional parses a bearer token when one is present but lets
// anonymous callers through; used by the guest booking endpoint.
func AuthOptional(secret []byte, role string) gin.HandlerFunc {
	required := Auth(secret, role)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		required(c)
	}
}

// AdminAuth validates the session cookie against the admin table on
// every call. This is the trust-elevated path; row scoping does not
// apply behind it.
func AdminAuth(adminRepo repositories.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AdminSessionCookie)
		if err != nil || token == "" {
			abortUnauthorized(c, "admin session required")
			return
		}
		adminID, err := adminRepo.LookupSession(token)
		if err != nil {
			abortUnauthorized(c, "invalid admin session")
			return
		}
		c.Set(adminIDKey, adminID)
		c.Next()
	}
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(domain.Principal); ok {
			return p, true
		}
	}
	return domain.Principal{}, false
}

// GetAdminID returns the authenticated admin id, if any.
func GetAdminID(c *gin.Context) (int64, bool) {
	if v, ok := c.Get(adminIDKey); ok {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	return 0, false
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
	})
}
