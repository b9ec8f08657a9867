// ABOUTME: JSON response helpers for the HTTP API.
// ABOUTME: Errors are RFC 7807 problem+json documents mapped from domain errors.
package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/harperreed/bbg/internal/access"
	"github.com/harperreed/bbg/internal/models"
	"github.com/harperreed/bbg/internal/session"
	"github.com/harperreed/bbg/internal/storage"
	"github.com/sirupsen/logrus"
)

const problemTypeBase = "urn:bbg:problem:"

// statusFor maps a domain error to an HTTP status and problem code.
func statusFor(err error) (int, string) {
	var verrs models.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return fiber.StatusBadRequest, "invalid-form"
	case errors.Is(err, session.ErrNoSession):
		return fiber.StatusUnauthorized, "unauthorized"
	case errors.Is(err, access.ErrForbidden):
		return fiber.StatusForbidden, "forbidden"
	case errors.Is(err, storage.ErrNotFound):
		return fiber.StatusNotFound, "not-found"
	case errors.Is(err, storage.ErrAmbiguous):
		return fiber.StatusBadRequest, "ambiguous-id"
	case errors.Is(err, storage.ErrReferenced):
		return fiber.StatusConflict, "referenced"
	case errors.Is(err, storage.ErrMissingReference):
		return fiber.StatusConflict, "missing-reference"
	default:
		return fiber.StatusInternalServerError, "internal-error"
	}
}

// problem writes err as application/problem+json. Validation failures carry
// the per-field messages under "errors".
func (s *Server) problem(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	log := s.log.WithFields(logrus.Fields{"path": c.Path(), "status": status})
	if status >= fiber.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	} else {
		log.WithError(err).Debug("request rejected")
	}

	body := fiber.Map{
		"type":     problemTypeBase + code,
		"title":    titleFor(status),
		"status":   status,
		"detail":   err.Error(),
		"instance": c.OriginalURL(),
	}

	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		body["errors"] = []models.FieldError(verrs)
	}
	var ref *storage.ReferenceError
	if errors.As(err, &ref) {
		body["blocking_count"] = ref.Count
	}

	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(body, "application/problem+json")
}

// badRequest reports a body that could not be decoded.
func (s *Server) badRequest(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"type":     problemTypeBase + "bad-request",
		"title":    titleFor(fiber.StatusBadRequest),
		"status":   fiber.StatusBadRequest,
		"detail":   msg,
		"instance": c.OriginalURL(),
	}, "application/problem+json")
}

func titleFor(status int) string {
	return strings.TrimSpace(fiber.NewError(status).Message)
}
