package api

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/utils"
	"github.com/sahilchouksey/actividades-api/utils/response"
)

// MaxBodySize bounds request bodies, image uploads included
const MaxBodySize = 8 * 1024 * 1024

type APIServer struct {
	app           *fiber.App
	listenAddress string
	log           *utils.Logger
}

func NewAPIServer(listenAddress string, log *utils.Logger) *APIServer {
	return &APIServer{
		app:           NewApp(log),
		listenAddress: listenAddress,
		log:           log,
	}
}

// NewApp builds the fiber app with the JSON codec and error envelope used by every route
func NewApp(log *utils.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "actividades-api",
		BodyLimit:             MaxBodySize,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})
}

// errorHandler renders errors that escape the handlers (unknown routes, panics, body limits) in the envelope
func errorHandler(log *utils.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else if log != nil {
			log.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		}

		return response.Error(c, code, message, response.CodeForStatus(code))
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	s.log.Info("starting API server", "address", s.listenAddress)
	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits up to timeout for in-flight requests
func (s *APIServer) Shutdown(timeout time.Duration) error {
	s.log.Info("shutting down API server")
	return s.app.ShutdownWithTimeout(timeout)
}
