// Package httpapi is the thin HTTP boundary in front of the classifier
// service. It owns no classification logic: it binds requests, translates
// typed errors into status codes and reports store health.
package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/artifact"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/utils"
)

// PredictRequest is the inbound classification request body
type PredictRequest struct {
	SMS string `json:"sms"`
}

// PredictResponse is the classification response body
type PredictResponse struct {
	Result       string  `json:"result"`
	Confidence   float64 `json:"confidence"`
	ModelVersion string  `json:"model_version"`
	SMS          string  `json:"sms"`
}

// Server serves the classification API over HTTP
type Server struct {
	app            *fiber.App
	service        *core.ClassifierService
	store          *artifact.Store
	textProcessor  *utils.TextProcessor
	logger         *zap.Logger
	listenAddress  string
	maxMessageSize int
}

// NewServer creates the HTTP server and registers its routes
func NewServer(
	service *core.ClassifierService,
	store *artifact.Store,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
	listenAddress string,
	maxMessageSize int,
) *Server {
	s := &Server{
		service:        service,
		store:          store,
		textProcessor:  textProcessor,
		logger:         logger,
		listenAddress:  listenAddress,
		maxMessageSize: maxMessageSize,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(recover.New())

	app.Post("/predict", s.handlePredict)
	app.Get("/health", s.handleHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	s.app = app
	return s
}

// handlePredict classifies one message
func (s *Server) handlePredict(c fiber.Ctx) error {
	var req PredictRequest
	if err := c.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "request body must be JSON with an sms field")
	}

	// An empty message is still classified; emptiness is never an error
	message := s.textProcessor.ProcessText(req.SMS, s.maxMessageSize)

	result, err := s.service.Classify(c.Context(), message)
	if err != nil {
		return s.translateError(err)
	}

	return c.JSON(PredictResponse{
		Result:       string(result.Label),
		Confidence:   result.Confidence,
		ModelVersion: result.ModelVersion,
		SMS:          req.SMS,
	})
}

// handleHealth reports readiness based on artifact store state
func (s *Server) handleHealth(c fiber.Ctx) error {
	if !s.store.Healthy() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"state":  s.store.State().String(),
		})
	}

	art, err := s.store.Current()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"state":  s.store.State().String(),
		})
	}
	return c.JSON(fiber.Map{
		"status":        "ok",
		"state":         s.store.State().String(),
		"model_version": art.Metadata.Version,
	})
}

func (s *Server) translateError(err error) error {
	var unavailable *core.ModelUnavailableError
	var fetchErr *core.ArtifactFetchError
	var integrityErr *core.ArtifactIntegrityError
	switch {
	case errors.As(err, &unavailable), errors.As(err, &fetchErr), errors.As(err, &integrityErr):
		s.logger.Warn("Classification unavailable", zap.Error(err))
		return fiber.NewError(fiber.StatusServiceUnavailable, "model is not available")
	default:
		s.logger.Error("Classification failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "classification failed")
	}
}

// App exposes the underlying fiber app for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start begins serving in the background
func (s *Server) Start() error {
	go func() {
		if err := s.app.Listen(s.listenAddress); err != nil {
			s.logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()
	s.logger.Info("HTTP server listening", zap.String("address", s.listenAddress))
	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop() error {
	return s.app.Shutdown()
}
