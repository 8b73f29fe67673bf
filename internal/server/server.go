package server

import (
	"net/http"

	"lsmkv/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	router  *gin.Engine
	storage storage.KVStorage
	metrics http.Handler
}

// New creates a new server instance. The gatherer backs GET /metrics and may be
// nil, in which case the route is not registered.
func New(store storage.KVStorage, gatherer prometheus.Gatherer) *Server {
	s := &Server{
		storage: store,
		router:  gin.Default(),
	}
	if gatherer != nil {
		s.metrics = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleHealthCheck())
	s.router.GET("/v1/stats", s.handleStats())

	s.router.POST("/v1/keys", s.handleInsert())
	s.router.PUT("/v1/keys/:key", s.handleUpdate())
	s.router.GET("/v1/keys/:key", s.handleGet())
	s.router.DELETE("/v1/keys/:key", s.handleDelete())

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics))
	}
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run blocks serving on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
