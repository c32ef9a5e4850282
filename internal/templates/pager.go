package templates

import (
	"net/url"
	"strconv"
)

// Pager links a listing page to its neighbours. Query carries the filters of
// the current page so they survive paging.
type Pager struct {
	Path   string
	Query  url.Values
	Limit  int
	Offset int
	Count  int
}

func (p Pager) url(offset int) string {
	q := url.Values{}
	for k, v := range p.Query {
		q[k] = v
	}
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("offset", strconv.Itoa(offset))
	return p.Path + "?" + q.Encode()
}

// PrevURL is "" on the first page
func (p Pager) PrevURL() string {
	if p.Offset <= 0 {
		return ""
	}
	return p.url(max(p.Offset-p.Limit, 0))
}

// NextURL is "" when the current page was not full
func (p Pager) NextURL() string {
	if p.Limit <= 0 || p.Count < p.Limit {
		return ""
	}
	return p.url(p.Offset + p.Limit)
}

func (p Pager) hasLinks() bool {
	return p.PrevURL() != "" || p.NextURL() != ""
}
