// Package middleware implements the request authentication gate.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockwatch/internal/api"
	"stockwatch/internal/feature/identity/domain"
	"stockwatch/internal/feature/identity/domain/entity"
	"stockwatch/internal/platform/metrics"
)

// ContextIdentity is the gin context key under which the resolved identity
// is stored for downstream handlers.
const ContextIdentity = "identity"

// APIKeyHeader carries the static admin key for trusted automation.
// Its value is checked against the configured key set and never forwarded.
const APIKeyHeader = "x-api-key"

// TokenValidator resolves an opaque credential to an identity.
// Following Go convention: interfaces are defined by the consumer (middleware),
// not the provider (adapters).
type TokenValidator interface {
	// Validate returns the identity for the given Authorization header value,
	// or an error classified with the identity domain sentinels.
	Validate(ctx context.Context, authorization string) (*entity.Identity, error)
}

// GateMetrics records gate decisions. May be nil.
type GateMetrics interface {
	RecordAuthDecision(outcome string)
}

// AuthRequired returns the gin middleware enforcing the authentication gate.
//
// Decision order:
//  1. A request carrying a configured admin API key gets the static admin
//     identity attached; the identity service is never called.
//  2. Without an Authorization header the request is rejected 401 before
//     any remote call.
//  3. Otherwise the credential is validated remotely: service unreachable
//     or timed out → 503, credential rejected → 401, anything else → 500.
//
// The gate only runs on routes it is attached to; handlers that require an
// identity must additionally check FromContext themselves.
func AuthRequired(cfg Config, validator TokenValidator, gm GateMetrics) gin.HandlerFunc {
	adminKeys := make(map[string]struct{}, len(cfg.AdminAPIKeys))
	for _, k := range cfg.AdminAPIKeys {
		if k != "" {
			adminKeys[k] = struct{}{}
		}
	}

	record := func(outcome string) {
		if gm != nil {
			gm.RecordAuthDecision(outcome)
		}
	}

	return func(c *gin.Context) {
		if key := c.GetHeader(APIKeyHeader); key != "" {
			if _, ok := adminKeys[key]; ok {
				record(metrics.OutcomeAdmin)
				c.Set(ContextIdentity, &cfg.AdminIdentity)
				c.Next()
				return
			}
		}

		auth := c.GetHeader("Authorization")
		if auth == "" {
			record(metrics.OutcomeUnauthenticated)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				api.ErrorResponse{Error: domain.ErrMissingCredential.Error()})
			return
		}

		ident, err := validator.Validate(c.Request.Context(), auth)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrAuthServiceUnavailable):
				slog.Warn("identity service unavailable", "error", err, "remote_addr", c.ClientIP())
				record(metrics.OutcomeUnavailable)
				c.AbortWithStatusJSON(http.StatusServiceUnavailable,
					api.ErrorResponse{Error: err.Error()})
			case errors.Is(err, domain.ErrInvalidToken):
				record(metrics.OutcomeUnauthenticated)
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					api.ErrorResponse{Error: domain.ErrInvalidToken.Error()})
			default:
				slog.Error("token validation failed", "error", err, "remote_addr", c.ClientIP())
				record(metrics.OutcomeInternal)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					api.ErrorResponse{Error: "internal server error: " + err.Error()})
			}
			return
		}

		record(metrics.OutcomeOK)
		c.Set(ContextIdentity, ident)
		c.Next()
	}
}

// FromContext returns the identity attached by the gate, if any.
// Handlers that require authentication must treat a false return as 401;
// the gate does not guarantee that every route carries an identity.
func FromContext(c *gin.Context) (*entity.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil, false
	}
	ident, ok := v.(*entity.Identity)
	if !ok || ident == nil {
		return nil, false
	}
	return ident, true
}
