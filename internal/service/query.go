package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// queryParam is one key of a query string. A nil value, a nil pointer or an
// empty string leaves the key out.
type queryParam struct {
	key   string
	value any
}

// buildQuery encodes params in the order given, skipping absent values
func buildQuery(params ...queryParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		v, ok := queryValue(p.value)
		if !ok {
			continue
		}
		parts = append(parts, encodeComponent(p.key)+"="+encodeComponent(v))
	}
	return strings.Join(parts, "&")
}

func queryValue(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case *string:
		if v == nil {
			return "", false
		}
		return *v, *v != ""
	case int:
		return strconv.Itoa(v), true
	case *int:
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case *int64:
		if v == nil {
			return "", false
		}
		return strconv.FormatInt(*v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	case *bool:
		if v == nil {
			return "", false
		}
		return strconv.FormatBool(*v), true
	case time.Time:
		return v.Format(time.RFC3339), true
	case *time.Time:
		if v == nil {
			return "", false
		}
		return v.Format(time.RFC3339), true
	default:
		s := fmt.Sprint(v)
		return s, s != ""
	}
}

// encodeComponent percent-encodes s byte by byte for use as a query key or
// value. Letters, digits and -_.!~*'() pass through; everything else,
// including space, becomes %XX.
func encodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

const upperHex = "0123456789ABCDEF"

func unreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
