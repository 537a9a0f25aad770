package handlers

import (
	"sync"

	"github.com/gin-gonic/gin"

	intconfig "careline-backend/internal/config"
	"careline-backend/internal/gateway"
)

// Shared collaborators wired once at startup. Handlers build their
// service values per request; these are the process-wide clients.
var (
	depsMu        sync.RWMutex
	jwtSecret     []byte
	payGateway    gateway.PaymentGateway
	addressClient *gateway.AddressClient
	smsNotifier   *gateway.SMSNotifier
	router        *gin.Engine
)

// Configure installs the gateway clients and secrets for all handlers.
func Configure(env intconfig.Env, pg gateway.PaymentGateway, ac *gateway.AddressClient, sms *gateway.SMSNotifier) {
	depsMu.Lock()
	defer depsMu.Unlock()
	jwtSecret = []byte(env.JWTSecret)
	payGateway = pg
	addressClient = ac
	smsNotifier = sms
}

// SetRouter stores the active gin engine for later inspection.
func SetRouter(r *gin.Engine) {
	depsMu.Lock()
	defer depsMu.Unlock()
	router = r
}

// JWTSecret exposes the signing key to the router for auth middleware.
func JWTSecret() []byte {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return jwtSecret
}

func paymentGateway() gateway.PaymentGateway {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return payGateway
}

func addresses() *gateway.AddressClient {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return addressClient
}

func notifier() *gateway.SMSNotifier {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return smsNotifier
}
