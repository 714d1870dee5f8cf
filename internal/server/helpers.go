package server

import (
	"errors"
	"log/slog"

	"glimpse/internal/middleware"
	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseUUIDParam extracts a route parameter as a UUID. On failure it writes
// a 400 JSON response and returns errResponseWritten; callers should check:
// if err != nil { return nil }.
func parseUUIDParam(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return uuid.Nil, errResponseWritten
	}
	return id, nil
}

// statusForAppError maps an AppError code to its HTTP status.
func statusForAppError(err *models.AppError) int {
	switch err.Code {
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "CONFLICT":
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the error with the status its AppError code implies.
// Internal causes are logged here; the caller only sees the generic message.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == "INTERNAL_ERROR" {
			middleware.Logger.ErrorContext(c.UserContext(), "internal error",
				slog.String("path", c.Path()),
				slog.String("error", appErr.Error()),
			)
		}
		return models.RespondWithError(c, statusForAppError(appErr), appErr)
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}

// requireUser maps the authenticated external identity to its internal user
// row. A valid token whose identity never synced is a 404, kept distinct
// from the 401 of a missing or invalid token. On failure the response is
// written and errResponseWritten is returned.
func (s *Server) requireUser(c *fiber.Ctx) (*models.User, error) {
	externalID, _ := c.Locals("externalID").(string)
	if externalID == "" {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
		return nil, errResponseWritten
	}

	user, err := s.userService.ResolveExternal(c.UserContext(), externalID)
	if err != nil {
		_ = respondError(c, err)
		return nil, errResponseWritten
	}
	if user == nil {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", externalID))
		return nil, errResponseWritten
	}
	return user, nil
}

// currentUserID resolves the caller to an internal user ID when a valid
// token is present, uuid.Nil otherwise. Used on public reads where identity
// only enriches the response.
func (s *Server) currentUserID(c *fiber.Ctx) uuid.UUID {
	externalID, ok := s.optionalExternalID(c)
	if !ok {
		return uuid.Nil
	}
	user, err := s.userService.ResolveExternal(c.UserContext(), externalID)
	if err != nil || user == nil {
		return uuid.Nil
	}
	return user.ID
}
