package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"emicalc/internal/loan"
	"emicalc/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay minimal: parse, delegate to the service, translate errors.
// db may be nil when the service runs without persistent history.
func RegisterRoutes(app *fiber.App, db *sql.DB, calcSvc service.CalculationService) {
	// Embedded calculator page
	app.Get("/", CalculatorUI())

	// Health endpoint: checks DB connectivity when a database is configured
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	app.Post("/calculations", CreateCalculation(calcSvc))
	app.Get("/calculations", ListCalculations(calcSvc))
	app.Get("/calculations/:id", GetCalculation(calcSvc))
	app.Delete("/calculations/:id", DeleteCalculation(calcSvc))
	app.Post("/calculations/:id/export", ExportCalculation(calcSvc))
}

// HealthCheck reports dependency health. With no database configured the
// process has no external dependencies and is healthy by definition.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy", "history": "memory"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always returns 200 while the process is serving.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// CreateCalculation runs an EMI or tenure calculation and records it.
func CreateCalculation(calcSvc service.CalculationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CalculationInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		res, err := calcSvc.Calculate(c.UserContext(), in)
		if err != nil {
			switch {
			case errors.Is(err, loan.ErrPaymentTooLow):
				return writeError(c, fiber.StatusBadRequest, "EMI_TOO_LOW", "the EMI does not cover the monthly interest; increase the EMI")
			case errors.Is(err, service.ErrInvalidInput):
				return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListCalculations returns calculation history with limit & offset.
func ListCalculations(calcSvc service.CalculationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "10")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := calcSvc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetCalculation returns a stored calculation with its schedule.
func GetCalculation(calcSvc service.CalculationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := calcSvc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "calculation not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// DeleteCalculation removes a calculation from history by ID.
func DeleteCalculation(calcSvc service.CalculationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := calcSvc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "calculation not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ExportCalculation stores the schedule CSV in object storage and returns
// a presigned download URL.
func ExportCalculation(calcSvc service.CalculationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := calcSvc.Export(c.UserContext(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound) || errors.Is(err, sql.ErrNoRows):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "calculation not found")
			case errors.Is(err, service.ErrExportUnavailable):
				return writeError(c, fiber.StatusServiceUnavailable, "EXPORT_UNAVAILABLE", "schedule export is not configured")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
