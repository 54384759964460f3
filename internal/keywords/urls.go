package keywords

import (
	"fmt"

	urlkit "github.com/goliatone/go-urlkit"
)

// DefaultRouteGroup and DefaultRouteName identify the keyword-detail route in
// the go-urlkit route manager.
const (
	DefaultRouteGroup = "kb"
	DefaultRouteName  = "keyword"
)

// URLBuilder resolves keyword page URLs through a go-urlkit RouteManager so
// the link targets stay consistent with whatever routing the host app mounts.
type URLBuilder struct {
	manager *urlkit.RouteManager
	group   string
	route   string
}

// NewURLBuilder constructs a builder over the supplied route manager. Empty
// group/route names fall back to the defaults.
func NewURLBuilder(manager *urlkit.RouteManager, group, route string) *URLBuilder {
	if group == "" {
		group = DefaultRouteGroup
	}
	if route == "" {
		route = DefaultRouteName
	}
	return &URLBuilder{manager: manager, group: group, route: route}
}

// DefaultRouteManager returns a route manager serving the conventional
// /kb/:category/:slug keyword-detail path under the supplied base URL.
func DefaultRouteManager(baseURL string) *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    DefaultRouteGroup,
				BaseURL: baseURL,
				Paths: map[string]string{
					DefaultRouteName: "/kb/:category/:slug",
				},
			},
		},
	})
}

// KeywordURL builds the canonical page URL for a keyword.
func (b *URLBuilder) KeywordURL(categorySlug, keywordSlug string) (string, error) {
	if b == nil || b.manager == nil {
		return "", fmt.Errorf("keywords: route manager not configured")
	}

	group, err := lookupGroup(b.manager, b.group)
	if err != nil {
		return "", err
	}

	builder, err := safeBuilder(group, b.route)
	if err != nil {
		return "", err
	}
	builder.WithParam("category", categorySlug)
	builder.WithParam("slug", keywordSlug)

	url, err := builder.Build()
	if err != nil {
		return "", err
	}
	return url, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("keywords: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("keywords: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("keywords: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("keywords: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}
