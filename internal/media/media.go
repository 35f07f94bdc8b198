// Package media turns the relative image paths the marketplace API stores
// into absolute URLs the browser can load.
package media

import (
	"strings"

	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
)

// Resolver rewrites stored image paths against the public media origin.
type Resolver struct {
	origin   string
	basePath string
}

// NewResolver builds a resolver. origin is the public host serving uploads,
// basePath the path prefix uploads live under on that host.
func NewResolver(origin, basePath string) (*Resolver, error) {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "media resolver requires a public origin")
	}
	basePath = strings.Trim(strings.TrimSpace(basePath), "/")
	if basePath == "" {
		basePath = "uploads"
	}
	return &Resolver{origin: origin, basePath: basePath}, nil
}

// Resolve returns the absolute URL for a stored image path. Already absolute
// URLs pass through untouched; empty paths stay empty so the UI can fall back
// to a placeholder.
func (r *Resolver) Resolve(imagePath string) string {
	imagePath = strings.TrimSpace(imagePath)
	if imagePath == "" {
		return ""
	}
	if strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		return imagePath
	}

	trimmed := strings.TrimLeft(imagePath, "/")
	if strings.HasPrefix(trimmed, r.basePath+"/") || trimmed == r.basePath {
		return r.origin + "/" + trimmed
	}
	return r.origin + "/" + r.basePath + "/" + trimmed
}
