package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var ErrLinkerMinTermLengthInvalid = errors.New("keywords config: linker minimum term length must be at least 1 rune")
var ErrLinkerCacheSizeInvalid = errors.New("keywords config: linker cache size must be zero or positive")
var ErrStorageProviderUnknown = errors.New("keywords config: storage provider is invalid")
var ErrLoggingProviderRequired = errors.New("keywords config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("keywords config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("keywords config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("keywords config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the keywords module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled  bool
	Linker   LinkerConfig
	Markdown MarkdownConfig
	Routes   RoutesConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Logging  LoggingConfig
	Features Features
}

// LinkerConfig tunes the keyword-linking engine.
type LinkerConfig struct {
	MinTermLength int
	CacheSize     int
	AnchorClass   string
}

// RoutesConfig captures routing configuration for keyword page URLs. When
// RouteConfig is set it overrides the conventional BaseURL/Group/Route wiring.
type RoutesConfig struct {
	BaseURL     string
	Group       string
	Route       string
	RouteConfig *urlkit.Config
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// MarkdownConfig captures parser behaviour for keyword descriptions.
type MarkdownConfig struct {
	Parser MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Logger bool
	Render bool
}

// DefaultConfig returns opinionated defaults: memory storage, a bounded link
// cache, and conventional /kb/:category/:slug keyword routes.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Linker: LinkerConfig{
			MinTermLength: 2,
			CacheSize:     512,
			AnchorClass:   "keyword-link",
		},
		Markdown: MarkdownConfig{
			Parser: MarkdownParserConfig{},
		},
		Routes: RoutesConfig{},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Render: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Linker.MinTermLength < 1 {
		return ErrLinkerMinTermLengthInvalid
	}
	if cfg.Linker.CacheSize < 0 {
		return ErrLinkerCacheSizeInvalid
	}
	if provider := normalizeProvider(cfg.Storage.Provider); provider != "" && provider != "memory" && provider != "bun" {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
