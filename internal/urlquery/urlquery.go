// Package urlquery serializes plain key/value objects into URL query strings.
package urlquery

import (
	"fmt"
	"net/url"
	"strconv"
)

// Encode renders params as a query string including the leading "?".
// Nil values and empty strings are skipped; an empty result yields "".
func Encode(params map[string]any) string {
	values := url.Values{}
	for key, raw := range params {
		if key == "" {
			continue
		}
		switch v := raw.(type) {
		case nil:
			continue
		case []string:
			for _, item := range v {
				if item != "" {
					values.Add(key, item)
				}
			}
			continue
		}
		if s, ok := format(raw); ok {
			values.Set(key, s)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

func format(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, v != ""
	case *string:
		if v == nil || *v == "" {
			return "", false
		}
		return *v, true
	case int:
		return strconv.Itoa(v), true
	case *int:
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case fmt.Stringer:
		s := v.String()
		return s, s != ""
	default:
		s := fmt.Sprintf("%v", v)
		return s, s != ""
	}
}
