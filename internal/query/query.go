// Package query builds URL query parameters the way the Command API expects
// them: unset fields are omitted entirely, list values are comma-joined.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Values is a url.Values builder that drops zero values.
type Values struct {
	v url.Values
}

// New returns an empty builder.
func New() *Values {
	return &Values{v: url.Values{}}
}

// Set adds a string parameter unless it is empty.
func (q *Values) Set(key, value string) *Values {
	if value != "" {
		q.v.Set(key, value)
	}
	return q
}

// SetInt adds an integer parameter unless it is zero.
func (q *Values) SetInt(key string, value int64) *Values {
	if value != 0 {
		q.v.Set(key, strconv.FormatInt(value, 10))
	}
	return q
}

// SetBool adds "true"/"false" when value is non-nil.
func (q *Values) SetBool(key string, value *bool) *Values {
	if value != nil {
		q.v.Set(key, strconv.FormatBool(*value))
	}
	return q
}

// SetList adds a comma-joined list parameter unless the list is empty.
func (q *Values) SetList(key string, values []string) *Values {
	if len(values) > 0 {
		q.v.Set(key, strings.Join(values, ","))
	}
	return q
}

// Values returns the built url.Values, or nil when nothing was set.
func (q *Values) Values() url.Values {
	if len(q.v) == 0 {
		return nil
	}
	return q.v
}
