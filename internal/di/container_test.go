package di

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-keywords/internal/keywords"
	"github.com/goliatone/go-keywords/internal/logging/gologger"
	"github.com/goliatone/go-keywords/internal/runtimeconfig"
)

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Linker.MinTermLength = 0

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestContainerWiresMemoryPipeline(t *testing.T) {
	ctx := context.Background()

	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	svc := container.KeywordService()
	category, err := svc.CreateCategory(ctx, keywords.CreateCategoryRequest{Name: "Science"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.Create(ctx, keywords.CreateKeywordRequest{
		CategoryID: category.ID,
		Title:      "Photosynthesis",
		IsPublic:   true,
	}); err != nil {
		t.Fatalf("create keyword: %v", err)
	}

	// The mutation triggered a corpus rebuild through the wired trigger, so
	// linking works without an explicit Rebuild call.
	out := container.Linker().LinkContent(ctx, "<p>photosynthesis</p>", uuid.New())
	if !strings.Contains(out, `href="/kb/science/photosynthesis"`) {
		t.Fatalf("mention not linked: %q", out)
	}
}

func TestContainerRenderFeatureToggle(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.RenderService() == nil {
		t.Fatal("render service missing with feature enabled")
	}

	cfg.Features.Render = false
	container, err = NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.RenderService() != nil {
		t.Fatal("render service present with feature disabled")
	}
}

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}
	if provider.GetLogger("keywords.test") == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestConfigureLoggerProviderConsoleDefault(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() == nil {
		t.Fatal("expected console provider when logging feature enabled")
	}

	cfg.Features.Logger = false
	container, err = NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() != nil {
		t.Fatal("expected nil provider when logging feature disabled")
	}
}

func TestContainerRouteOverrides(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Routes.BaseURL = "https://kb.example.com"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	url, err := container.URLBuilder().KeywordURL("science", "photosynthesis")
	if err != nil {
		t.Fatalf("keyword url: %v", err)
	}
	if url != "https://kb.example.com/kb/science/photosynthesis" {
		t.Fatalf("url = %q", url)
	}
}
