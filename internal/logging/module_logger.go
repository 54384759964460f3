package logging

import (
	"context"

	"github.com/goliatone/go-keywords/pkg/interfaces"
)

const (
	rootModule     = "keywords"
	linkerModule   = "keywords.linker"
	termsModule    = "keywords.terms"
	rewriteModule  = "keywords.rewrite"
	renderModule   = "keywords.render"
	keywordsModule = "keywords.admin"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}
	return logger
}

// LinkerLogger returns the logger namespace reserved for the linking facade.
func LinkerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, linkerModule)
}

// TermsLogger returns the logger namespace reserved for term store rebuilds.
func TermsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, termsModule)
}

// RewriteLogger returns the logger namespace reserved for the HTML rewriter.
func RewriteLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rewriteModule)
}

// RenderLogger returns the logger namespace reserved for the render pipeline.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// KeywordsLogger returns the logger namespace reserved for keyword admin services.
func KeywordsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, keywordsModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
