package http

import (
	"fmt"
	"strings"
	"time"

	"checkers/internal/core"
	"checkers/internal/processor"
	"checkers/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitRate = 10 // req/sec

// HTTPHandler handles HTTP requests and routes them to the processor
type HTTPHandler struct {
	proc *processor.Processor
	svc  *service.Service
}

func NewHTTPHandler(proc *processor.Processor, svc *service.Service) *HTTPHandler {
	return &HTTPHandler{proc: proc, svc: svc}
}

// Options tune the Fiber app
type Options struct {
	DevMode   bool // Doubles the rate limit
	AccessLog bool // Request lines on stdout
	RateLimit int  // Requests per second per client, zero for the default
}

func NewFiberApp(proc *processor.Processor, svc *service.Service, opts Options) *fiber.App {
	h := NewHTTPHandler(proc, svc)

	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          35 * time.Second, // Longer than a long poll
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	maxReq := rateLimitRate
	if opts.RateLimit > 0 {
		maxReq = opts.RateLimit
	}
	if opts.DevMode {
		maxReq *= 2
	}
	api.Use(limiter.New(limiter.Config{
		Max:          maxReq,
		Expiration:   1 * time.Second,
		KeyGenerator: clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/games", h.CreateGame)
	api.Put("/games/:gameId/players", h.ConfigurePlayers)
	api.Get("/games/:gameId", h.GetGame)
	api.Delete("/games/:gameId", h.DeleteGame)
	api.Post("/games/:gameId/moves", h.MakeMove)
	api.Get("/games/:gameId/moves", h.LegalMoves)
	api.Post("/games/:gameId/undo", h.UndoMove)
	api.Get("/games/:gameId/board", h.GetBoard)

	return app
}

// clientKey rate-limits by the first X-Forwarded-For hop when present
func clientKey(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return xff
	}
	return c.IP()
}

// contentTypeValidator ensures POST and PUT requests carry JSON
func contentTypeValidator(c *fiber.Ctx) error {
	method := c.Method()
	if method == fiber.MethodPost || method == fiber.MethodPut {
		contentType := c.Get("Content-Type")
		if contentType != "" && !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler renders every unhandled error as an ErrorResponse
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrGameNotFound
		case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// statusFor maps processor error codes to HTTP status codes
func statusFor(code string) int {
	switch code {
	case core.ErrGameNotFound:
		return fiber.StatusNotFound
	case core.ErrNotHumanTurn, core.ErrGameOver:
		return fiber.StatusConflict
	case core.ErrResourceLimit:
		return fiber.StatusServiceUnavailable
	case core.ErrInternalError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

// reply writes a processor response with the given success status
func reply(c *fiber.Ctx, resp processor.ProcessorResponse, okStatus int) error {
	if !resp.Success {
		return c.Status(statusFor(resp.Error.Code)).JSON(resp.Error)
	}
	if resp.Pending {
		okStatus = fiber.StatusAccepted
	}
	if resp.Data == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(okStatus).JSON(resp.Data)
}

// Health reports liveness and storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.GetStorageHealth(),
		"games":   h.svc.GameCount(),
	})
}
