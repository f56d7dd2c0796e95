// Package location holds the external side of the calculator: the query
// string the record is synchronized with, its navigation history and the
// Router that exposes both as a querystore.Location.
package location

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/zjrosen/datecalc/internal/querystore"
)

// Format encodes q as a URL query string without the leading '?'.
// Keys are sorted. An empty query formats to "".
func Format(q querystore.Query) string {
	values := make(url.Values, len(q))
	for k, v := range q {
		values.Set(k, v)
	}
	return values.Encode()
}

// Parse decodes a URL query string. A leading '?' is ignored and for a
// repeated key the first value wins.
func Parse(s string) (querystore.Query, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "?")
	values, err := url.ParseQuery(s)
	if err != nil {
		return nil, fmt.Errorf("parse query %q: %w", s, err)
	}
	q := make(querystore.Query, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			q[k] = vs[0]
		}
	}
	return q, nil
}
