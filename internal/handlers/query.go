package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// queryReader turns optional query parameters into the pointer fields of the
// client's list params. Absent or empty parameters stay nil; the first
// malformed one is kept in err.
type queryReader struct {
	c   *fiber.Ctx
	err error
}

func (q *queryReader) raw(key string) (string, bool) {
	v := q.c.Query(key)
	return v, v != "" && q.err == nil
}

func (q *queryReader) optString(key string) *string {
	v, ok := q.raw(key)
	if !ok {
		return nil
	}
	return &v
}

func (q *queryReader) optInt(key string) *int {
	v, ok := q.raw(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		q.err = fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
		return nil
	}
	return &n
}

func (q *queryReader) optInt64(key string) *int64 {
	v, ok := q.raw(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		q.err = fmt.Errorf("%s must be an integer, got %q", key, v)
		return nil
	}
	return &n
}

func (q *queryReader) optBool(key string) *bool {
	v, ok := q.raw(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.err = fmt.Errorf("%s must be true or false, got %q", key, v)
		return nil
	}
	return &b
}

func (q *queryReader) optTime(key string) *time.Time {
	v, ok := q.raw(key)
	if !ok {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		q.err = fmt.Errorf("%s must be an RFC 3339 timestamp, got %q", key, v)
		return nil
	}
	return &t
}

// filters returns the current query minus paging, for the pager links
func (q *queryReader) filters() url.Values {
	values := url.Values{}
	for k, v := range q.c.Queries() {
		if k == "limit" || k == "offset" || v == "" {
			continue
		}
		values.Set(k, v)
	}
	return values
}
