package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

const defaultQueryLabel = "all items"

// Query is an opaque set of catalog search parameters. Keys and values are
// forwarded verbatim to the search endpoint.
type Query map[string]any

// Label returns the human-readable search text used in logs.
func (q Query) Label() string {
	if v, ok := q["search_text"]; ok {
		if s := formatParam(v); s != "" {
			return s
		}
	}
	return defaultQueryLabel
}

// Values encodes the query as URL parameters. Slices become repeated keys
// and nil values are dropped.
func (q Query) Values() url.Values {
	params := url.Values{}

	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := q[k].(type) {
		case nil:
			continue
		case []any:
			for _, item := range v {
				if item != nil {
					params.Add(k, formatParam(item))
				}
			}
		case []string:
			for _, item := range v {
				params.Add(k, item)
			}
		default:
			params.Set(k, formatParam(v))
		}
	}

	return params
}

func formatParam(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case json.Number:
		return n.String()
	default:
		return fmt.Sprint(n)
	}
}
