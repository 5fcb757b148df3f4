// Package server exposes the sync engine over HTTP: subscription management,
// sync triggers, OPML exchange and article state updates.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/akovalev/feedsync/pkg/domain"
	"github.com/akovalev/feedsync/pkg/opml"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/sync_trigger.go -pkg mocks -skip-ensure -fmt goimports . SyncTrigger

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	store    Store
	trigger  SyncTrigger
	importer Importer
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Store is the persistence surface for server operations
type Store interface {
	GetAccounts(ctx context.Context) ([]*domain.Account, error)
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	GetFeeds(ctx context.Context, accountID int64) ([]*domain.Feed, error)
	CreateFeed(ctx context.Context, feed *domain.Feed) error
	UpdateFeedFlags(ctx context.Context, feedID int64, notify, fullContent bool) error
	UpdateFeedGroup(ctx context.Context, feedID, groupID int64) error
	DeleteFeed(ctx context.Context, id int64) error
	GetGroups(ctx context.Context, accountID int64) ([]*domain.Group, error)
	EnsureGroup(ctx context.Context, accountID int64, name string) (*domain.Group, error)
	GetArticles(ctx context.Context, feedID int64, limit, offset int) ([]*domain.Article, error)
	SetRead(ctx context.Context, articleID int64, read bool) error
	SetStarred(ctx context.Context, articleID int64, starred bool) error
}

// SyncTrigger runs sync on demand
type SyncTrigger interface {
	SyncAll(ctx context.Context, scope domain.SyncScope, reason domain.SyncReason) (*domain.SyncRunResult, error)
}

// Importer handles OPML subscription imports
type Importer interface {
	Import(ctx context.Context, accountID int64, data []byte, overwrite bool) (*opml.ImportStats, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, store Store, trigger SyncTrigger, importer Importer, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		store:    store,
		trigger:  trigger,
		importer: importer,
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedsync", "akovalev", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(5 * 1024 * 1024)) // 5MB, OPML files can be large
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /sync", s.syncHandler)

		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("POST /feeds", s.createFeedHandler)
		r.HandleFunc("DELETE /feeds/{id}", s.deleteFeedHandler)
		r.HandleFunc("PUT /feeds/{id}/flags", s.feedFlagsHandler)
		r.HandleFunc("PUT /feeds/{id}/group", s.feedGroupHandler)
		r.HandleFunc("GET /feeds/{id}/articles", s.listArticlesHandler)

		r.HandleFunc("GET /groups", s.listGroupsHandler)

		r.HandleFunc("PUT /articles/{id}/read", s.articleReadHandler)
		r.HandleFunc("PUT /articles/{id}/star", s.articleStarHandler)

		r.HandleFunc("POST /opml/import", s.opmlImportHandler)
		r.HandleFunc("GET /opml/export", s.opmlExportHandler)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
