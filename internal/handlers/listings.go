package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/rimun/internal/model"
	"github.com/jjenkins/rimun/internal/service"
	"github.com/jjenkins/rimun/internal/templates"
)

func CommitteesHandler(api RimunAPI, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := &queryReader{c: c}
		page := model.PageParams{Limit: q.optInt("limit"), Offset: q.optInt("offset")}
		if q.err != nil {
			return renderBadRequest(c, q.err)
		}

		committees, err := api.Committees(c.UserContext(), page)
		if err != nil {
			return renderError(c, logger, err)
		}

		return render(c, fiber.StatusOK, templates.Committees(committees, pagerFor("/committees", q, page.Limit, page.Offset, len(committees))))
	}
}

func SessionsHandler(api RimunAPI, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := &queryReader{c: c}
		params := model.ListSessionsParams{
			Active: q.optBool("active"),
			Limit:  q.optInt("limit"),
			Offset: q.optInt("offset"),
		}
		if q.err != nil {
			return renderBadRequest(c, q.err)
		}

		sessions, err := api.Sessions(c.UserContext(), params)
		if err != nil {
			return renderError(c, logger, err)
		}

		return render(c, fiber.StatusOK, templates.Sessions(sessions, pagerFor("/sessions", q, params.Limit, params.Offset, len(sessions))))
	}
}

func PostsHandler(api RimunAPI, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := &queryReader{c: c}
		page := model.PageParams{Limit: q.optInt("limit"), Offset: q.optInt("offset")}
		if q.err != nil {
			return renderBadRequest(c, q.err)
		}

		posts, err := api.Posts(c.UserContext(), page)
		if err != nil {
			return renderError(c, logger, err)
		}

		return render(c, fiber.StatusOK, templates.Posts(posts, pagerFor("/posts", q, page.Limit, page.Offset, len(posts))))
	}
}

func pagerFor(path string, q *queryReader, limit, offset *int, count int) templates.Pager {
	return templates.Pager{
		Path:   path,
		Query:  q.filters(),
		Limit:  valueOr(limit, service.DefaultLimit),
		Offset: valueOr(offset, service.DefaultOffset),
		Count:  count,
	}
}
