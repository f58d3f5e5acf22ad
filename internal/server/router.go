package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hakwonmap/academy-reputation/internal/docstore"
	"github.com/hakwonmap/academy-reputation/internal/monitoring"
)

// Server serves the persisted reputation data over HTTP. It reads the
// document store only; the batch pipeline is the writer.
type Server struct {
	store          docstore.Store
	metrics        *monitoring.Registry
	requestTimeout time.Duration
}

// New creates a query service server. metrics may be nil.
func New(store docstore.Store, metrics *monitoring.Registry, requestTimeout time.Duration) *Server {
	return &Server{
		store:          store,
		metrics:        metrics,
		requestTimeout: requestTimeout,
	}
}

// Router builds the gin engine with middleware and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// The client app is served from a different origin; mirror the
	// permissive preflight the functions used.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
		MaxAge:          time.Hour,
	}))

	r.Use(s.timeoutMiddleware())
	r.Use(s.metricsMiddleware())

	r.GET("/health", s.handleHealth)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	r.GET("/getReputation", s.handleGetReputation)
	r.GET("/getReviews", s.handleGetReviews)

	return r
}

// timeoutMiddleware bounds handler time against a slow document store.
func (s *Server) timeoutMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.requestTimeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (s *Server) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if s.metrics != nil {
			s.metrics.HTTPRequests.WithLabelValues(
				c.FullPath(),
				strconv.Itoa(c.Writer.Status()),
			).Inc()
		}
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
