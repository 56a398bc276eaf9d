package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ExpenseTracker/pkg/messages"
	"ExpenseTracker/pkg/metrics"
	"ExpenseTracker/pkg/token"
)

// RevocationChecker is the part of token.Ledger the gate needs.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, raw string) (bool, error)
}

type GateConfig struct {
	// Enabled=false turns the gate into a pass-through.
	Enabled bool
	Policy  token.FailurePolicy
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// TokenGate rejects requests whose bearer token has been revoked. Requests
// without a token pass through; routes that need one enforce it themselves.
func TokenGate(ledger RevocationChecker, cfg GateConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		raw := BearerToken(c)
		if raw == "" {
			cfg.Metrics.GateDecision(metrics.DecisionAnonymous)
			c.Next()
			return
		}

		revoked, err := ledger.IsTokenRevoked(c.Request.Context(), raw)
		if err != nil {
			cfg.Metrics.GateDecision(metrics.DecisionStoreError)
			if cfg.Policy == token.FailOpen {
				cfg.Logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("token gate: store unavailable, forwarding (fail_open)")
				c.Next()
				return
			}
			cfg.Logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("token gate: store unavailable, rejecting (fail_closed)")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": messages.RevocationUnavailable})
			return
		}
		if revoked {
			cfg.Metrics.GateDecision(metrics.DecisionRejected)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": messages.TokenInvalid})
			return
		}

		cfg.Metrics.GateDecision(metrics.DecisionAllowed)
		c.Next()
	}
}
