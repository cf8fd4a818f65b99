package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nischayn/vyapari-api/internal/config"
)

var defaultAllowedHeaders = []string{
	"Accept",
	"Authorization",
	"Content-Type",
	"X-Request-ID",
	"Origin",
	IdempotencyKeyHeader,
}

// CORSMiddleware builds the CORS policy from configuration, falling back to
// development defaults when a list is empty. Idempotency-Key stays allowed
// regardless, since browser clients must send it on billing writes.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	policy := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID", IdempotencyReplayedHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(policy.AllowOrigins) == 0 {
		policy.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	if len(policy.AllowMethods) == 0 {
		policy.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(policy.AllowHeaders) == 0 {
		policy.AllowHeaders = defaultAllowedHeaders
	} else if !containsHeader(policy.AllowHeaders, IdempotencyKeyHeader) {
		policy.AllowHeaders = append(policy.AllowHeaders, IdempotencyKeyHeader)
	}

	return cors.New(policy)
}

func containsHeader(headers []string, want string) bool {
	for _, h := range headers {
		if h == want {
			return true
		}
	}
	return false
}
