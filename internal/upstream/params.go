package upstream

import (
	"net/url"
	"strconv"
)

// query renders the list parameters as a query string, empty values omitted.
func (p ListParams) query() string {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	if p.Category != "" {
		values.Set("category", p.Category)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
