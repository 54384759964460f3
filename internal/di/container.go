package di

import (
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-keywords/internal/keywords"
	"github.com/goliatone/go-keywords/internal/linker"
	"github.com/goliatone/go-keywords/internal/logging/console"
	"github.com/goliatone/go-keywords/internal/logging/gologger"
	"github.com/goliatone/go-keywords/internal/render"
	"github.com/goliatone/go-keywords/internal/runtimeconfig"
	"github.com/goliatone/go-keywords/pkg/interfaces"
)

// Container wires module dependencies. Defaults run fully in memory; supplying
// a bun.DB switches repositories to SQL storage with optional read caching.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	categoryRepo keywords.CategoryRepository
	keywordRepo  keywords.KeywordRepository
	aliasRepo    keywords.AliasRepository

	routeManager *urlkit.RouteManager
	urls         *keywords.URLBuilder

	keywordSvc keywords.Service
	linkerSvc  interfaces.Linker
	renderSvc  *render.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds repositories to the supplied bun database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the default logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithRouteManager overrides the default keyword route manager.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// WithKeywordService overrides the default keyword service binding.
func WithKeywordService(svc keywords.Service) Option {
	return func(c *Container) {
		c.keywordSvc = svc
	}
}

// WithLinker overrides the default linker binding.
func WithLinker(svc interfaces.Linker) Option {
	return func(c *Container) {
		c.linkerSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		categoryRepo: keywords.NewMemoryCategoryRepository(),
		keywordRepo:  keywords.NewMemoryKeywordRepository(),
		aliasRepo:    keywords.NewMemoryAliasRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureRoutes()

	if c.keywordSvc == nil {
		c.keywordSvc = keywords.NewService(
			c.categoryRepo,
			c.keywordRepo,
			c.aliasRepo,
			c.urls,
			keywords.WithLoggerProvider(c.loggerProvider),
		)
	}

	if c.linkerSvc == nil {
		svc, err := linker.New(c.keywordSvc,
			linker.WithLoggerProvider(c.loggerProvider),
			linker.WithMinTermLength(cfg.Linker.MinTermLength),
			linker.WithCacheCapacity(cfg.Linker.CacheSize),
			linker.WithAnchorClass(cfg.Linker.AnchorClass),
		)
		if err != nil {
			return nil, err
		}
		c.linkerSvc = svc
	}

	// Registered after construction: the linker consumes the keyword service
	// as its snapshot source, so the trigger closes the edit-rebuild loop.
	c.keywordSvc.SetRebuildTrigger(c.linkerSvc)

	if cfg.Features.Render {
		c.renderSvc = render.NewService(render.Config{
			Parser: interfaces.ParseOptions{
				Extensions: cfg.Markdown.Parser.Extensions,
				Sanitize:   cfg.Markdown.Parser.Sanitize,
				HardWraps:  cfg.Markdown.Parser.HardWraps,
				SafeMode:   cfg.Markdown.Parser.SafeMode,
			},
		}, c.keywordSvc, c.linkerSvc, render.WithLoggerProvider(c.loggerProvider))
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		minLevel := consoleLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &minLevel})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.categoryRepo = keywords.NewBunCategoryRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.keywordRepo = keywords.NewBunKeywordRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.aliasRepo = keywords.NewBunAliasRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureRoutes() {
	if c.routeManager == nil {
		if c.Config.Routes.RouteConfig != nil {
			c.routeManager = urlkit.NewRouteManager(c.Config.Routes.RouteConfig)
		} else {
			c.routeManager = keywords.DefaultRouteManager(strings.TrimSpace(c.Config.Routes.BaseURL))
		}
	}
	c.urls = keywords.NewURLBuilder(c.routeManager, c.Config.Routes.Group, c.Config.Routes.Route)
}

// LoggerProvider exposes the configured logger provider, nil when logging is
// disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// CategoryRepository exposes the configured category repository.
func (c *Container) CategoryRepository() keywords.CategoryRepository {
	return c.categoryRepo
}

// KeywordRepository exposes the configured keyword repository.
func (c *Container) KeywordRepository() keywords.KeywordRepository {
	return c.keywordRepo
}

// AliasRepository exposes the configured alias repository.
func (c *Container) AliasRepository() keywords.AliasRepository {
	return c.aliasRepo
}

// RouteManager exposes the configured urlkit route manager.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// URLBuilder exposes the keyword URL builder.
func (c *Container) URLBuilder() *keywords.URLBuilder {
	return c.urls
}

// KeywordService returns the configured keyword admin service.
func (c *Container) KeywordService() keywords.Service {
	return c.keywordSvc
}

// Linker returns the configured keyword linker.
func (c *Container) Linker() interfaces.Linker {
	return c.linkerSvc
}

// RenderService returns the configured render pipeline, nil when the render
// feature is disabled.
func (c *Container) RenderService() *render.Service {
	return c.renderSvc
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "", "info":
		return console.LevelInfo
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}
