package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"PulseBoard/internal/dashboard"
	"PulseBoard/internal/metrics"
	"PulseBoard/internal/model"
	"PulseBoard/internal/recorder"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AgentRunner runs one agent on demand.
type AgentRunner interface {
	RunNow(ctx context.Context, name model.AgentName) error
}

// Commerce is the read side of the commerce client proxied by the API.
type Commerce interface {
	ListProducts(ctx context.Context, limit int) ([]json.RawMessage, error)
	ListOrders(ctx context.Context, status string, limit int) ([]json.RawMessage, error)
}

// Options configures a Server.
type Options struct {
	Store     *dashboard.Store
	Runner    AgentRunner
	Commerce  Commerce
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	StaticDir string
	StartedAt time.Time
	Now       func() time.Time
}

// Server is the dashboard HTTP API.
type Server struct {
	Router *gin.Engine
	opts   Options
}

// NewServer builds the router with all routes registered.
func NewServer(opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.StartedAt.IsZero() {
		opts.StartedAt = opts.Now()
	}
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), corsMiddleware(), opts.Metrics.GinMiddleware())

	s := &Server{Router: router, opts: opts}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.Router.Group("/api")
	{
		api.GET("/dashboard", s.GetDashboard)
		api.GET("/health", s.GetHealth)

		api.GET("/agents/status", s.GetAgentsStatus)
		api.POST("/agents/:agent/toggle", s.ToggleAgent)
		api.POST("/agents/:agent/run", s.RunAgent)
		api.GET("/agents/:agent/runs", s.GetAgentRuns)

		api.POST("/content/generate", s.GenerateContent)

		api.GET("/shopify/products", s.GetProducts)
		api.GET("/shopify/orders", s.GetOrders)
	}

	if reg := s.opts.Metrics.Registry(); reg != nil {
		s.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	s.Router.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(s.opts.StaticDir, "index.html"))
	})
	s.Router.NoRoute(s.serveStatic)
}

// ServeHTTP makes Server usable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// serveStatic serves files under StaticDir for unmatched GET requests.
func (s *Server) serveStatic(c *gin.Context) {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		// path.Clean on a rooted path cannot climb above StaticDir
		rel := path.Clean("/" + c.Request.URL.Path)
		file := filepath.Join(s.opts.StaticDir, filepath.FromSlash(rel))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

func (s *Server) uptime() float64 {
	return s.opts.Now().Sub(s.opts.StartedAt).Seconds()
}
