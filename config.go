package keywords

import "github.com/goliatone/go-keywords/internal/runtimeconfig"

var (
	ErrLinkerMinTermLengthInvalid = runtimeconfig.ErrLinkerMinTermLengthInvalid
	ErrLinkerCacheSizeInvalid     = runtimeconfig.ErrLinkerCacheSizeInvalid
	ErrStorageProviderUnknown     = runtimeconfig.ErrStorageProviderUnknown
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	LinkerConfig         = runtimeconfig.LinkerConfig
	RoutesConfig         = runtimeconfig.RoutesConfig
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	Features             = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
