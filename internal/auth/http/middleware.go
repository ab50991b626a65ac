package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/identity/internal/auth/domain"
	"github.com/allisson/identity/internal/httputil"
)

// AuthenticationMiddleware enforces gate decisions on every request.
//
// Rejected requests are aborted with 401 before any handler runs. Authenticated
// requests carry the token subject in the request context, readable with GetSubject.
//
// Usage:
//
//	router.Use(AuthenticationMiddleware(gate, logger))
//	router.GET("/v1/me", func(c *gin.Context) {
//	    userID, _ := GetSubject(c.Request.Context())
//	    ...
//	})
func AuthenticationMiddleware(gate *Gate, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := gate.Evaluate(c.Request.Method, c.Request.URL.Path, c.GetHeader("Authorization"))

		if decision.State == Rejected {
			logger.Debug("authentication failed",
				slog.String("path", c.Request.URL.Path),
				slog.String("reason", decision.Reason),
				slog.String("trail", decision.TrailString()))
			httputil.HandleErrorGin(c, authDomain.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		if decision.Authenticated() {
			ctx := WithSubject(c.Request.Context(), decision.Subject)
			c.Request = c.Request.WithContext(ctx)

			logger.Debug("authentication successful",
				slog.String("subject", decision.Subject),
				slog.String("trail", decision.TrailString()))
		}

		c.Next()
	}
}
