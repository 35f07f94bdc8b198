package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseListParams reads the shared pagination and filter query parameters.
func ParseListParams(r *http.Request) (upstream.ListParams, error) {
	page, err := ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return upstream.ListParams{}, err
	}
	limit, err := ParseQueryInt(r, "limit", defaultPageSize, 1, maxPageSize)
	if err != nil {
		return upstream.ListParams{}, err
	}
	return upstream.ListParams{
		Page:     page,
		Limit:    limit,
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	}, nil
}
