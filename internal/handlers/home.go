package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/rimun/internal/templates"
)

func HomeHandler(api RimunAPI, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		data := templates.HomeData{APIURL: api.BaseURL()}

		// an unhealthy API is shown on the page rather than failing it
		health, err := api.Health(ctx)
		if err != nil {
			logger.WarnContext(ctx, "rimun api health check failed", slog.String("error", err.Error()))
			data.HealthError = err.Error()
		} else {
			data.Health = health
		}

		forums, err := api.Forums(ctx)
		if err != nil {
			return renderError(c, logger, err)
		}
		data.Forums = forums

		return render(c, fiber.StatusOK, templates.Home(data))
	}
}
