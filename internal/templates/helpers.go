package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

import (
	"fmt"
	"strconv"

	"github.com/jjenkins/rimun/internal/model"
)

// HomeData is what the landing page shows. HealthError is set instead of
// Health when the API could not be reached.
type HomeData struct {
	APIURL      string
	Health      *model.Health
	HealthError string
	Forums      []model.Forum
}

// DelegateFilters echoes the active filters back into the search form
type DelegateFilters struct {
	SessionID         string
	CountryCode       string
	StatusApplication string
	StatusHousing     string
}

type detailRow struct {
	label string
	value string
}

func delegateRows(d model.Delegate) []detailRow {
	return []detailRow{
		{"Person ID", strconv.FormatInt(d.PersonID, 10)},
		{"Country", fmt.Sprintf("%s (%s)", d.CountryName, d.CountryCode)},
		{"Session", fmt.Sprintf("%d (edition %d)", d.SessionID, d.SessionEdition)},
		{"Forum", optString(d.ForumAcronym)},
		{"Committee", optString(d.CommitteeName)},
		{"Delegation", optString(d.DelegationName)},
		{"School", optString(d.SchoolName)},
		{"Role", optString(d.RoleConfirmed)},
		{"Requested role", optString(d.RoleRequested)},
		{"Group", optString(d.GroupConfirmed)},
		{"Requested group", optString(d.GroupRequested)},
		{"Application status", d.StatusApplication},
		{"Housing status", d.StatusHousing},
		{"Ambassador", optBool(d.IsAmbassador)},
		{"Can host", yesNo(d.HousingAvailable)},
		{"Guests", optInt(d.HousingGuests)},
		{"Updated", d.UpdatedAt},
	}
}

func delegateURL(personID int64) string {
	return "/delegates/" + strconv.FormatInt(personID, 10)
}

func errorTitle(status int) string {
	return fmt.Sprintf("Error %d", status)
}

func optString(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func optBool(v *bool) string {
	if v == nil {
		return "-"
	}
	return yesNo(*v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
