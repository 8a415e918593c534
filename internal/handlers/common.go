package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const userHeader = "X-User-ID"

var validate = validator.New()

// ErrorHandler renders every unhandled error as {error, code}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return fail(c, code, err.Error())
}

func fail(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}

// userID reads the caller from the X-User-ID header.
func userID(c *fiber.Ctx, fallback string) string {
	if id := strings.TrimSpace(c.Get(userHeader)); id != "" {
		return id
	}
	return fallback
}

func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
