// Package keywords links recognized keyword mentions in rendered HTML to
// their reference pages. Hosts embed the module, edit keywords through the
// admin service, and pass page HTML through the linker at render time.
package keywords

import (
	"github.com/goliatone/go-keywords/internal/di"
	admin "github.com/goliatone/go-keywords/internal/keywords"
	"github.com/goliatone/go-keywords/internal/render"
	"github.com/goliatone/go-keywords/pkg/interfaces"
)

// KeywordService exports the keyword admin service contract.
type KeywordService = admin.Service

// Linker exports the content-linking contract.
type Linker = interfaces.Linker

// RenderService exports the Markdown render pipeline.
type RenderService = render.Service

// Category exports the keyword category model.
type Category = admin.Category

// Keyword exports the keyword model.
type Keyword = admin.Keyword

// KeywordAlias exports the keyword alias model.
type KeywordAlias = admin.KeywordAlias

// KeywordRecord exports the linker's corpus record DTO.
type KeywordRecord = interfaces.KeywordRecord

// Module represents the top level keywords runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a keywords module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Keywords returns the configured keyword admin service.
func (m *Module) Keywords() KeywordService {
	return m.container.KeywordService()
}

// Linker returns the configured content linker.
func (m *Module) Linker() Linker {
	return m.container.Linker()
}

// Render returns the Markdown render pipeline when the render feature is
// enabled.
func (m *Module) Render() *RenderService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.RenderService()
}
