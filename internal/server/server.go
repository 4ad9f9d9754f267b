// Package server exposes the blog's content and image resolution over a
// small JSON API, plus static serving for exported sites.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/goliatone/go-blog/images"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/posts"
)

var errPostsRequired = errors.New("server: posts service is required")

// Config captures the HTTP listener settings.
type Config struct {
	Addr      string
	StaticDir string
	BaseURL   string
}

// Dependencies lists the services the API surfaces.
type Dependencies struct {
	Posts  posts.Service
	Images *images.Service
	Logger interfaces.Logger
}

// Server wires the JSON API and static file serving on top of echo.
type Server struct {
	cfg    Config
	echo   *echo.Echo
	posts  posts.Service
	images *images.Service
	logger interfaces.Logger
}

// New builds a server with routes registered but the listener not yet
// started.
func New(cfg Config, deps Dependencies) (*Server, error) {
	if deps.Posts == nil {
		return nil, errPostsRequired
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		cfg:    cfg,
		echo:   e,
		posts:  deps.Posts,
		images: deps.Images,
		logger: logger,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	e := s.echo

	api := e.Group("/api")
	api.GET("/posts", s.handleListPosts)
	api.GET("/posts/:slug", s.handleGetPost)
	api.GET("/tags", s.handleListTags)
	api.GET("/categories", s.handleListCategories)

	if s.images != nil {
		api.GET("/images/article", s.handleArticleImage)
		api.POST("/images/cache/clear", s.handleClearImageCache)
	}

	if s.cfg.StaticDir != "" {
		e.Static("/", s.cfg.StaticDir)
	}
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("server.start", "addr", s.cfg.Addr)
	if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests before closing the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routing tree, used by tests and embedding callers.
func (s *Server) Handler() http.Handler {
	return s.echo
}
