package middleware

import (
	"context"
	"errors"
	"strings"

	"assurgest/internal/core/access"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/actor"
	"assurgest/internal/pkg/jwt"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the fiber local holding the validated access token claims
const ClaimsKey = "claims"

// TokenValidator validates access tokens, including the revocation check
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, accessToken string) (*jwt.Claims, error)
}

// AuthMiddleware creates authentication middleware. The acting user is
// carried in c.UserContext() for the services.
func AuthMiddleware(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := bearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := validator.ValidateAccessToken(c.UserContext(), accessToken)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				return response.Unauthorized(c, "Access token expired")
			case errors.Is(err, domain.ErrTokenRevoked):
				return response.Unauthorized(c, "Access token revoked")
			case errors.Is(err, domain.ErrTokenInvalid):
				return response.Unauthorized(c, "Invalid access token")
			default:
				return response.InternalServerError(c, "Failed to validate access token")
			}
		}

		ctx := actor.WithID(c.UserContext(), claims.UserID)
		ctx = actor.WithRole(ctx, domain.Role(claims.Role))
		c.SetUserContext(ctx)
		c.Locals(ClaimsKey, claims)

		return c.Next()
	}
}

// OptionalAuth sets the acting user when a valid token is present and never rejects
func OptionalAuth(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if accessToken := bearerToken(c); accessToken != "" {
			if claims, err := validator.ValidateAccessToken(c.UserContext(), accessToken); err == nil {
				ctx := actor.WithID(c.UserContext(), claims.UserID)
				c.SetUserContext(actor.WithRole(ctx, domain.Role(claims.Role)))
				c.Locals(ClaimsKey, claims)
			}
		}
		return c.Next()
	}
}

// Require allows the request only when the caller's role holds op
func Require(gate *access.Gate, op access.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := gate.Authorize(actor.Role(c.UserContext()), op)
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, domain.ErrUnauthorized):
			return response.Unauthorized(c, "Unauthorized")
		default:
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
	}
}

// Claims returns the access token claims set by AuthMiddleware
func Claims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(ClaimsKey).(*jwt.Claims)
	return claims
}

// bearerToken reads the access token from the cookie, then the Authorization header
func bearerToken(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}
