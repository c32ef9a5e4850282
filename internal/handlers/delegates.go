package handlers

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/rimun/internal/model"
	"github.com/jjenkins/rimun/internal/service"
	"github.com/jjenkins/rimun/internal/templates"
)

// DelegatesHandler lists delegates. Query parameters use the API's own names
// and are passed through when present.
func DelegatesHandler(api RimunAPI, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := &queryReader{c: c}
		params := model.ListDelegatesParams{
			SessionID:         q.optInt64("session_id"),
			DelegationID:      q.optInt64("delegation_id"),
			CommitteeID:       q.optInt64("committee_id"),
			CountryCode:       q.optString("country_code"),
			SchoolID:          q.optInt64("school_id"),
			StatusApplication: q.optString("status_application"),
			StatusHousing:     q.optString("status_housing"),
			IsAmbassador:      q.optBool("is_ambassador"),
			UpdatedSince:      q.optTime("updated_since"),
			Limit:             q.optInt("limit"),
			Offset:            q.optInt("offset"),
		}
		if q.err != nil {
			return renderBadRequest(c, q.err)
		}

		delegates, err := api.Delegates(c.UserContext(), params)
		if err != nil {
			return renderError(c, logger, err)
		}

		filters := templates.DelegateFilters{
			SessionID:         c.Query("session_id"),
			CountryCode:       c.Query("country_code"),
			StatusApplication: c.Query("status_application"),
			StatusHousing:     c.Query("status_housing"),
		}
		pager := templates.Pager{
			Path:   "/delegates",
			Query:  q.filters(),
			Limit:  valueOr(params.Limit, service.DefaultLimit),
			Offset: valueOr(params.Offset, service.DefaultOffset),
			Count:  len(delegates),
		}

		return render(c, fiber.StatusOK, templates.Delegates(delegates, filters, pager))
	}
}

func DelegateDetailHandler(api RimunAPI, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		personID, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return renderBadRequest(c, fmt.Errorf("invalid person id %q", c.Params("id")))
		}

		delegate, err := api.DelegateByID(c.UserContext(), personID)
		if err != nil {
			return renderError(c, logger, err)
		}

		return render(c, fiber.StatusOK, templates.DelegateDetail(*delegate))
	}
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
