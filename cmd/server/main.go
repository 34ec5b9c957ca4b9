package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/cardfolio/internal/card/commerce"
	"github.com/janisto/cardfolio/internal/http/health"
	"github.com/janisto/cardfolio/internal/http/v1/routes"
	"github.com/janisto/cardfolio/internal/platform/auth"
	"github.com/janisto/cardfolio/internal/platform/config"
	"github.com/janisto/cardfolio/internal/platform/firebase"
	applog "github.com/janisto/cardfolio/internal/platform/logging"
	appmiddleware "github.com/janisto/cardfolio/internal/platform/middleware"
	"github.com/janisto/cardfolio/internal/platform/respond"
	"github.com/janisto/cardfolio/internal/service/profile"
	"github.com/janisto/cardfolio/internal/service/remote"
	"github.com/janisto/cardfolio/internal/service/template"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	apiPrefix = "/v1"
	docsPath  = "/api-docs"
)

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		applog.LogError(context.Background(), "config error", err)
		os.Exit(1)
	}
	if err := applog.Configure(applog.Options{Level: cfg.LogLevel}); err != nil {
		applog.LogError(context.Background(), "logger config error", err, zap.String("level", cfg.LogLevel))
	}

	ctx := context.Background()
	deps, closeDeps, err := newDeps(ctx, cfg)
	if err != nil {
		applog.LogError(ctx, "backend init failed", err, zap.String("backend", string(cfg.Backend)))
		os.Exit(1)
	}
	defer closeDeps()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(deps, string(cfg.Backend)),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening",
			zap.String("addr", srv.Addr), zap.String("backend", string(cfg.Backend)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		closeDeps()
		os.Exit(1)
	case <-stop:
		applog.LogInfo(ctx, "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(ctx, "server exited")
}

// newDeps builds the stores and token verifier for the configured backend.
// The returned func releases them.
func newDeps(ctx context.Context, cfg config.Config) (routes.Deps, func(), error) {
	deps := routes.Deps{Origin: cfg.FrontendOrigin}
	noop := func() {}

	switch cfg.Backend {
	case config.BackendFirestore:
		clients, err := firebase.InitializeClients(ctx, firebase.Config{
			ProjectID:       cfg.ProjectID,
			CredentialsFile: cfg.CredentialsFile,
			Firestore:       true,
		})
		if err != nil {
			return deps, noop, err
		}
		deps.Verifier = clients.Verifier()
		deps.Templates = template.NewFirestoreStore(clients.Firestore)
		deps.Profiles = profile.NewFirestoreStore(clients.Firestore)
		return deps, func() {
			if err := clients.Close(); err != nil {
				applog.LogError(ctx, "firestore close error", err)
			}
		}, nil

	case config.BackendRemote:
		client := remote.NewClient(&http.Client{Timeout: 10 * time.Second}, remote.WithBaseURL(cfg.CardAPIURL))
		deps.Verifier = client.Verifier()
		deps.Templates = client.Templates()
		deps.Profiles = client.Profiles()
		return deps, noop, nil

	case config.BackendMemory:
		deps.Templates = template.NewMockTemplateService(starterTemplates()...)
		deps.Profiles = profile.NewMockProfileService()
		if cfg.ProjectID == "" {
			applog.LogWarn(ctx, "no firebase project configured; authenticated routes will reject every token")
			deps.Verifier = &auth.MockVerifier{Error: auth.ErrInvalidToken}
			return deps, noop, nil
		}
		clients, err := firebase.InitializeClients(ctx, firebase.Config{
			ProjectID:       cfg.ProjectID,
			CredentialsFile: cfg.CredentialsFile,
		})
		if err != nil {
			return deps, noop, err
		}
		deps.Verifier = clients.Verifier()
		return deps, noop, nil
	}
	return deps, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

// starterTemplates seeds the memory backend so a local run has a gallery.
func starterTemplates() []template.Template {
	return []template.Template{
		{Name: "Minimal Clean", Description: "Simple and professional", IsPopular: true},
		{Name: "Creative Studio", Description: "Bold colors for creatives", Layout: "creative", ConnectStyle: "list"},
		{
			Name:          "Executive Gold",
			Description:   "Premium look for leaders",
			Category:      commerce.CategoryPremium,
			OriginalPrice: 249,
			Discount:      20,
			IsNew:         true,
		},
	}
}

// newRouter assembles middleware, the health probe and the v1 API.
func newRouter(deps routes.Deps, store string) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	corsOrigins := []string{}
	if deps.Origin != "" {
		corsOrigins = append(corsOrigins, deps.Origin)
	}
	router.Use(
		appmiddleware.Security(apiPrefix+docsPath),
		appmiddleware.Vary("Accept"),
		appmiddleware.CORS(corsOrigins...),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(Version, store))

	v1 := chi.NewRouter()
	v1.NotFound(respond.NotFoundHandler())
	v1.MethodNotAllowed(respond.MethodNotAllowedHandler())
	router.Mount(apiPrefix, v1)

	cfg := huma.DefaultConfig("Cardfolio API", Version)
	cfg.DocsPath = docsPath
	cfg.Servers = []*huma.Server{{URL: apiPrefix}}
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
	api := humachi.New(v1, cfg)
	addCBORContent(api)

	routes.Register(api, deps)
	return router
}

// addCBORContent documents application/cbor next to every JSON body.
func addCBORContent(api huma.API) {
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if c, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = c
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if c, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = c
				}
			}
		},
	)
}
