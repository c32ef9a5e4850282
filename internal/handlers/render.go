package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jjenkins/rimun/internal/model"
	"github.com/jjenkins/rimun/internal/service"
	"github.com/jjenkins/rimun/internal/templates"
)

// RimunAPI is the part of the RIMUN client the viewer needs
type RimunAPI interface {
	BaseURL() string
	Health(ctx context.Context) (*model.Health, error)
	Forums(ctx context.Context) ([]model.Forum, error)
	Committees(ctx context.Context, page model.PageParams) ([]model.Committee, error)
	Sessions(ctx context.Context, params model.ListSessionsParams) ([]model.Session, error)
	Posts(ctx context.Context, page model.PageParams) ([]model.Post, error)
	Delegates(ctx context.Context, params model.ListDelegatesParams) ([]model.Delegate, error)
	DelegateByID(ctx context.Context, personID int64) (*model.Delegate, error)
}

func render(c *fiber.Ctx, status int, page templ.Component) error {
	handler := adaptor.HTTPHandler(templ.Handler(page, templ.WithStatus(status)))
	return handler(c)
}

// renderError maps a failed API call onto the viewer's response: not found
// stays 404, any other API or decode failure is a bad gateway
func renderError(c *fiber.Ctx, logger *slog.Logger, err error) error {
	status := http.StatusInternalServerError
	var apiErr *service.APIError
	var decodeErr *service.DecodeError
	switch {
	case service.IsNotFound(err):
		status = http.StatusNotFound
	case errors.As(err, &apiErr), errors.As(err, &decodeErr):
		status = http.StatusBadGateway
	}

	if status != http.StatusNotFound {
		logger.ErrorContext(c.UserContext(), "rimun api call failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}

	return render(c, status, templates.ErrorPage(status, err.Error()))
}

func renderBadRequest(c *fiber.Ctx, err error) error {
	return render(c, http.StatusBadRequest, templates.ErrorPage(http.StatusBadRequest, err.Error()))
}
