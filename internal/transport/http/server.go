package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"sift/internal/pipeline"
	"sift/internal/store"

	"github.com/gin-gonic/gin"
)

// Server exposes a read-only dashboard API over the insight store.
type Server struct {
	addr      string
	store     store.InsightStore
	threshold int
	router    *gin.Engine
}

type Config struct {
	Addr string
	// Store backs the query endpoints.
	Store store.InsightStore
	// Threshold is the default min_score when the query omits one.
	Threshold int
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("http server requires an insight store")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8880"
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = pipeline.DefaultAlertThreshold
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		addr:      cfg.Addr,
		store:     cfg.Store,
		threshold: cfg.Threshold,
		router:    router,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	api := s.router.Group("/api")
	api.GET("/insights", s.handleInsights)
	api.GET("/alerts", s.handleAlerts)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}

// handleInsights lists the day's records. Defaults to today (UTC) and
// min_score=0; both are query-overridable.
func (s *Server) handleInsights(c *gin.Context) {
	date := c.DefaultQuery("date", pipeline.DayKey(time.Now()))
	minScore, err := strconv.Atoi(c.DefaultQuery("min_score", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_score must be an integer"})
		return
	}
	records, err := s.store.ListInsights(c.Request.Context(), date, minScore)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":      date,
		"min_score": minScore,
		"count":     len(records),
		"insights":  records,
	})
}

// handleAlerts is handleInsights pinned at the alert threshold.
func (s *Server) handleAlerts(c *gin.Context) {
	date := c.DefaultQuery("date", pipeline.DayKey(time.Now()))
	records, err := s.store.ListInsights(c.Request.Context(), date, s.threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":      date,
		"min_score": s.threshold,
		"count":     len(records),
		"alerts":    records,
	})
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until ctx cancels or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
