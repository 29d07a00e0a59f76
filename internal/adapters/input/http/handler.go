package http

import (
	"context"
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"localaichat/internal/domain"
	"localaichat/internal/ports/input"
	"localaichat/internal/ports/output"
	"localaichat/pkg/validator"
)

// HealthFunc reports whether a dependency is reachable
type HealthFunc func(ctx context.Context) error

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	chat      input.ChatService
	sessions  input.SessionService
	tools     []domain.Tool
	models    output.ModelLister
	health    HealthFunc
	apiURL    string
	validator validator.Validator

	// one in-flight generation per session
	locks sync.Map
}

// Option configures optional handler dependencies
type Option func(*HTTPHandler)

// WithTools sets the server tools offered to /tools
func WithTools(tools ...domain.Tool) Option {
	return func(h *HTTPHandler) { h.tools = tools }
}

// WithModels enables GET /v1/api/models against apiURL
func WithModels(models output.ModelLister, apiURL string) Option {
	return func(h *HTTPHandler) {
		h.models = models
		h.apiURL = apiURL
	}
}

// WithHealth adds a dependency check to /health
func WithHealth(health HealthFunc) Option {
	return func(h *HTTPHandler) { h.health = health }
}

// New func - Creates new HTTP handler
func New(chat input.ChatService, sessions input.SessionService, opts ...Option) *HTTPHandler {
	hdl := &HTTPHandler{
		chat:      chat,
		sessions:  sessions,
		validator: validator.New(),
	}
	for _, opt := range opts {
		opt(hdl)
	}
	return hdl
}

// Register mounts the handler routes on app
func (hdl *HTTPHandler) Register(app *fiber.App) {
	app.Get("/health", hdl.HealthCheck)

	api := app.Group("/v1/api")
	{
		api.Get("/models", hdl.ListModels)
		api.Post("/sessions", hdl.CreateSession)
		api.Get("/sessions", hdl.ListSessions)
		api.Get("/sessions/:id", hdl.GetSession)
		api.Delete("/sessions/:id", hdl.DeleteSession)
		api.Post("/sessions/:id/reset", hdl.ResetSession)
		api.Post("/sessions/:id/gen", hdl.Generate)
		api.Post("/sessions/:id/stream", hdl.Stream)
		api.Post("/sessions/:id/tools", hdl.GenerateWithTools)
	}
}

// HealthCheck func
// HealthCheck godoc
// @Summary Health check
// @Description Reports whether the server and its session store are up
// @Tags HEALTH
// @Success 200 {object} ResponseBody
// @Router /health	[get]
// @Produce json
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if hdl.health != nil {
		if err := hdl.health(c.UserContext()); err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
		}
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// ListModels func
// ListModels godoc
// @Summary List models
// @Description Lists the models served by the completion server
// @Tags MODELS
// @Success 200 {object} ModelListResponse
// @Router /v1/api/models	[get]
// @Produce json
func (hdl *HTTPHandler) ListModels(c *fiber.Ctx) error {
	if hdl.models == nil {
		return c.Status(fiber.StatusNotFound).JSON(ResponseBody{Status: NotFound})
	}
	models, err := hdl.models.ListModels(c.UserContext(), hdl.apiURL)
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ModelListResponse{Models: models}})
}

// lockSession serializes generations on one session and returns the unlock func
func (hdl *HTTPHandler) lockSession(id uuid.UUID) func() {
	value, _ := hdl.locks.LoadOrStore(id, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (hdl *HTTPHandler) parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func (hdl *HTTPHandler) badRequest(c *fiber.Ctx, err error) error {
	msg := ResponseBody{
		Status: BadRequest,
	}
	msg.Status.Message = []string{
		err.Error(),
	}
	return c.Status(fiber.StatusBadRequest).JSON(msg)
}

// errorResponse maps use case errors to HTTP statuses
func (hdl *HTTPHandler) errorResponse(c *fiber.Ctx, err error) error {
	var status Status
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = NotFound
	case errors.Is(err, domain.ErrSchemaMismatch),
		errors.Is(err, domain.ErrInvalidPrompt),
		errors.Is(err, domain.ErrStreamingSchema):
		status = BadRequest
	case errors.Is(err, domain.ErrGenerationFailed),
		errors.Is(err, domain.ErrRouting),
		errors.Is(err, domain.ErrInvalidToolResult),
		errors.Is(err, domain.ErrServerStatus):
		status = BadGateway
	default:
		logrus.Errorln(err)
		status = InternalServerError
	}
	msg := ResponseBody{
		Status: Status{Code: status.Code, Message: []string{err.Error()}},
	}
	return c.Status(status.Code).JSON(msg)
}
