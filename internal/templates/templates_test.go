package templates

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/jjenkins/rimun/internal/model"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func TestHome_EscapesContent(t *testing.T) {
	desc := "<script>alert(1)</script>"
	out := render(t, Home(HomeData{
		APIURL: "http://127.0.0.1:8081",
		Health: &model.Health{Status: "ok"},
		Forums: []model.Forum{{ID: 1, Acronym: "GA", Name: "General Assembly", Description: &desc}},
	}))

	if strings.Contains(out, "<script>") {
		t.Error("forum description was not escaped")
	}
	for _, want := range []string{"General Assembly", "&lt;script&gt;", `<strong class="ok">ok</strong>`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestHome_Unreachable(t *testing.T) {
	out := render(t, Home(HomeData{HealthError: "connection refused"}))
	if !strings.Contains(out, "unreachable") || !strings.Contains(out, "connection refused") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestDelegates_LinksAndFilters(t *testing.T) {
	committee := "Security Council"
	out := render(t, Delegates(
		[]model.Delegate{{PersonID: 42, FullName: "Ada Lovelace", CountryName: "UK", CommitteeName: &committee}},
		DelegateFilters{CountryCode: "GB"},
		Pager{Path: "/delegates", Limit: 1, Offset: 0, Count: 1},
	))

	for _, want := range []string{`href="/delegates/42"`, "Ada Lovelace", "Security Council", `value="GB"`, "next"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPager(t *testing.T) {
	p := Pager{Path: "/delegates", Query: url.Values{"country_code": {"IT"}}, Limit: 10, Offset: 10, Count: 10}

	if got, want := p.PrevURL(), "/delegates?country_code=IT&limit=10&offset=0"; got != want {
		t.Errorf("PrevURL() = %q, want %q", got, want)
	}
	if got, want := p.NextURL(), "/delegates?country_code=IT&limit=10&offset=20"; got != want {
		t.Errorf("NextURL() = %q, want %q", got, want)
	}

	last := Pager{Path: "/posts", Limit: 10, Offset: 0, Count: 3}
	if last.PrevURL() != "" || last.NextURL() != "" {
		t.Errorf("single short page should have no links: %q %q", last.PrevURL(), last.NextURL())
	}
}

func TestErrorPage(t *testing.T) {
	out := render(t, ErrorPage(502, "API /forums failed: 500 boom"))
	if !strings.Contains(out, "Error 502") || !strings.Contains(out, "boom") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestLayout_WrapsPageBody(t *testing.T) {
	out := render(t, ErrorPage(404, "delegate not found"))

	for _, want := range []string{
		"<title>Error 404 | RIMUN</title>",
		`<a href="/delegates">Delegates</a>`,
		"<main><h1>Error 404</h1><p>delegate not found</p></main>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPager_RendersLinksWithFilters(t *testing.T) {
	out := render(t, Committees(
		[]model.Committee{{ID: 1, Name: "Human Rights Council"}},
		Pager{Path: "/committees", Query: url.Values{"forum": {"GA"}}, Limit: 1, Offset: 1, Count: 1},
	))

	for _, want := range []string{
		`<p class="pager">`,
		`href="/committees?forum=GA&amp;limit=1&amp;offset=0">previous</a>`,
		`href="/committees?forum=GA&amp;limit=1&amp;offset=2">next</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	short := render(t, Sessions(nil, Pager{Path: "/sessions", Limit: 50}))
	if strings.Contains(short, "pager") || !strings.Contains(short, "No sessions.") {
		t.Errorf("empty listing should render no pager: %s", short)
	}
}

func TestDelegateDetail_Rows(t *testing.T) {
	guests := 2
	out := render(t, DelegateDetail(model.Delegate{
		PersonID:         7,
		FullName:         "Ada Lovelace",
		CountryName:      "United Kingdom",
		CountryCode:      "GB",
		HousingAvailable: true,
		HousingGuests:    &guests,
	}))

	for _, want := range []string{
		"<h1>Ada Lovelace</h1>",
		"<dt>Country</dt><dd>United Kingdom (GB)</dd>",
		"<dt>Can host</dt><dd>yes</dd>",
		"<dt>Guests</dt><dd>2</dd>",
		"<dt>Forum</dt><dd>-</dd>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
