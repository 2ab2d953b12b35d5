package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/confirm-trends/logmodule"
	"github.com/bitmark-inc/confirm-trends/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	mongoStore store.MongoStore

	// dataset queries are served from
	snapshot *Snapshot

	metrics tally.Scope
}

// NewServer new instance of server
func NewServer(mongoStore store.MongoStore, snapshot *Snapshot, metrics tally.Scope) *Server {
	if metrics == nil {
		metrics = tally.NoopScope
	}

	return &Server{
		mongoStore: mongoStore,
		snapshot:   snapshot,
		metrics:    metrics,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:    []string{"GET"},
		AllowHeaders:    []string{"Origin"},
		ExposeHeaders:   []string{"Content-Length"},
		AllowAllOrigins: true,
		MaxAge:          12 * time.Hour,
	}))

	countryRoute := apiRoute.Group("/countries")
	{
		countryRoute.GET("", s.countries)
		countryRoute.GET("/:country/trends", s.trends)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.mongoStore.Ping()
	if shouldInterupt(err, c) {
		return
	}

	_, refresh := s.snapshot.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":     "OK",
		"version":    viper.GetString("server.version"),
		"refresh_id": refresh.ID,
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
