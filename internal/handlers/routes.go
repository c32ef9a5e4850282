package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// NewApp wires the read-only viewer over the RIMUN API
func NewApp(api RimunAPI, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "RIMUN Viewer",
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	app.Use(RequestLogging(logger))
	app.Use(recover.New())

	app.Get("/", HomeHandler(api, logger))

	app.Get("/delegates", DelegatesHandler(api, logger))
	app.Get("/delegates/:id", DelegateDetailHandler(api, logger))

	app.Get("/committees", CommitteesHandler(api, logger))
	app.Get("/sessions", SessionsHandler(api, logger))
	app.Get("/posts", PostsHandler(api, logger))

	return app
}
