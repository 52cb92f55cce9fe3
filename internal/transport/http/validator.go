package http

import (
	"fmt"
	"reflect"
	"strings"

	"checkers/internal/core"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

const (
	localsValidated = "validated"
	localsBody      = "validatedBody"
)

// validationMiddleware parses and validates request bodies by route
func validationMiddleware(c *fiber.Ctx) error {
	method := c.Method()
	if method != fiber.MethodPost && method != fiber.MethodPut {
		return c.Next()
	}

	path := strings.TrimSuffix(c.Path(), "/")
	var requestType any

	switch {
	case strings.HasSuffix(path, "/games") && method == fiber.MethodPost:
		requestType = &core.CreateGameRequest{}
	case strings.HasSuffix(path, "/players") && method == fiber.MethodPut:
		requestType = &core.ConfigurePlayersRequest{}
	case strings.HasSuffix(path, "/moves") && method == fiber.MethodPost:
		requestType = &core.MoveRequest{}
	case strings.HasSuffix(path, "/undo") && method == fiber.MethodPost:
		requestType = &core.UndoRequest{}
	default:
		return c.Next()
	}

	if err := c.BodyParser(requestType); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid request body",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	if err := validate.Struct(requestType); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrInvalidRequest,
			Details: describeValidation(err),
		})
	}

	c.Locals(localsBody, requestType)
	c.Locals(localsValidated, true)

	return c.Next()
}

// describeValidation turns validator errors into one readable line
func describeValidation(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	var details strings.Builder
	for _, fe := range errs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		unit := ""
		if fe.Type().Kind() == reflect.String {
			unit = " characters"
		}
		switch fe.Tag() {
		case "required":
			fmt.Fprintf(&details, "%s is required", fe.Field())
		case "oneof":
			fmt.Fprintf(&details, "%s must be one of [%s]", fe.Field(), fe.Param())
		case "min":
			fmt.Fprintf(&details, "%s must be at least %s%s", fe.Field(), fe.Param(), unit)
		case "max":
			fmt.Fprintf(&details, "%s must be at most %s%s", fe.Field(), fe.Param(), unit)
		default:
			fmt.Fprintf(&details, "%s failed %s validation", fe.Field(), fe.Tag())
		}
	}
	return details.String()
}

// validatedBody returns the body stored by validationMiddleware
func validatedBody[T any](c *fiber.Ctx) (T, error) {
	var zero T
	if validated, ok := c.Locals(localsValidated).(bool); !ok || !validated {
		return zero, fiber.NewError(fiber.StatusInternalServerError, "validation bypass detected")
	}
	body, ok := c.Locals(localsBody).(*T)
	if !ok || body == nil {
		return zero, fiber.NewError(fiber.StatusInternalServerError, "validation data missing")
	}
	return *body, nil
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// gameIDParam returns the :gameId path parameter or writes a 400
func gameIDParam(c *fiber.Ctx) (string, bool, error) {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return "", false, c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid game ID format",
			Code:    core.ErrInvalidRequest,
			Details: "game ID must be a valid UUID",
		})
	}
	return gameID, true, nil
}
