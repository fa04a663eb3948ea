// Package gardenpub is a digital-garden publishing engine built with Go,
// Echo, and templ. It reads an Obsidian-style vault, compiles publishable
// frontmatter for every note marked dg-publish, and serves the result as a
// garden site with an admin dashboard, RSS, and sitemap out of the box.
//
// The heart of the engine is the frontmatter compiler (Compiler.Compile)
// and the ordered block serializer in the yamlblock package; everything
// else is plumbing around them.
package gardenpub

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
)

// App is the central gardenpub application. It wires together the store,
// cache, publisher, handlers, and middleware.
type App struct {
	Config    GardenConfig
	Echo      *echo.Echo
	Store     *Store
	Cache     *NoteCache
	Publisher *Publisher

	loginLimiter *LoginLimiter
	compiler     *Compiler
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new gardenpub App with the given configuration.
func New(cfg GardenConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, publisher, middleware, and routes,
// then starts the server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("gardenpub: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("gardenpub: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("gardenpub: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewNoteCache(a.Store, a.Config.NoteCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.Publisher = NewPublisher(a.Config, a.Store)
	a.Publisher.StaticDir = a.staticDir
	if a.compiler != nil {
		a.Publisher.compiler = a.compiler
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.Static("/"+attachmentsDir, a.staticDir+"/"+attachmentsDir)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/publish/", a.handleAdminPublish)

	// Notes are served at their permalinks, which are arbitrary rooted
	// paths; this catch-all must register last.
	e.GET("/*", a.handleNote)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if
// empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("gardenpub: required environment variable %s is not set", key)
	}
	return v
}
