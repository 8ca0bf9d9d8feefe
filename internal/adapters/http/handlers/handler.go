package handlers

import (
	"errors"
	"time"

	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/logger"
	"assurgest/internal/pkg/pagination"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError translates a service error into the JSON envelope.
// Unexpected errors are logged and hidden from the client.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validation *domain.ValidationError
		duplicate  *domain.DuplicateError
	)

	switch {
	case errors.As(err, &validation):
		return response.FieldError(c, fiber.StatusBadRequest, validation.Field, validation.Message)
	case errors.As(err, &duplicate):
		return response.FieldError(c, fiber.StatusConflict, duplicate.Field, duplicate.Error())
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, domain.ErrInactiveAccount):
		return response.Forbidden(c, "User account is not active")
	case errors.Is(err, domain.ErrTokenExpired):
		return response.Unauthorized(c, "Token expired, please login again")
	case errors.Is(err, domain.ErrTokenRevoked), errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to access this resource")
	case errors.Is(err, domain.ErrStorageDisabled):
		return response.ServiceUnavailable(c, "Document storage is not configured")
	default:
		logger.Error(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return response.InternalServerError(c, "Internal server error")
	}
}

// paramID parses a uuid path parameter
func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, domain.Invalid(name, "invalid identifier")
	}
	return id, nil
}

// parseBody decodes the JSON body into out
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Invalid("", "invalid request body")
	}
	return nil
}

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, domain.Invalid(name, "expected YYYY-MM-DD")
	}
	return &t, nil
}

func paginated(c *fiber.Ctx, message string, data any, p pagination.Page, total int64) error {
	return response.Success(c, message, pagination.NewListing(data, p, total))
}
