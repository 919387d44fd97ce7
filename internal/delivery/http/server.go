package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/pinmap-service/internal/config"
	"github.com/pinmap-service/internal/delivery/http/handler"
	"github.com/pinmap-service/internal/delivery/http/middleware"
	"go.uber.org/zap"
)

// Server is the Fiber HTTP server for the pin map API.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	pinHandler    *handler.PinHandler
	voteHandler   *handler.VoteHandler
	surveyHandler *handler.SurveyHandler
	statsHandler  *handler.StatsHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	pinHandler *handler.PinHandler,
	voteHandler *handler.VoteHandler,
	surveyHandler *handler.SurveyHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Pin Map Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		pinHandler:    pinHandler,
		voteHandler:   voteHandler,
		surveyHandler: surveyHandler,
		statsHandler:  statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Creation endpoints get a per-IP limiter. Voting stays unthrottled: a
	// toggle is two requests in quick succession and must not be coalesced.
	createLimit := middleware.RateLimit(
		s.config.RateLimit.CreatePerMinute,
		s.config.RateLimit.Burst,
	)

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	pins := s.app.Group("/pins")
	pins.Get("/", s.pinHandler.List)
	pins.Post("/", createLimit, s.pinHandler.Create)
	pins.Get("/categories", s.pinHandler.Categories)
	pins.Get("/votes/:voter_id", s.voteHandler.VotesByVoter)
	pins.Post("/vote", s.voteHandler.Cast)

	survey := s.app.Group("/survey")
	survey.Get("/definition/", s.surveyHandler.Definition)
	survey.Post("/", createLimit, s.surveyHandler.Submit)
	survey.Get("/user/:discord_username", s.surveyHandler.GetByUser)
	survey.Get("/", s.surveyHandler.List)
	survey.Get("/results/", s.surveyHandler.Results)

	s.app.Get("/stats", s.statsHandler.GetStatistics)
}

// Start runs the server until Shutdown or a listen error.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
