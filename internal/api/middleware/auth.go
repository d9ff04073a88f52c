package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-service/internal/api/metrics"
	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/token"
)

// Auth validates the bearer token and injects the verified claims into the
// request context. Expired and otherwise-invalid tokens both return 401 but
// carry distinct error messages.
func Auth(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrInvalidToken
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrInvalidToken
			}

			claims, err := tokens.Validate(parts[1], time.Now().UTC())
			if err != nil {
				if errors.Is(err, domain.ErrExpiredToken) {
					metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
				} else {
					metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				}
				return err
			}
			metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()

			c.Set("username", claims.Username)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}
