package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"content-optimizer/internal/models"
	"content-optimizer/shared/monitoring"
	"content-optimizer/shared/storage"
)

// Server exposes the stored competitor data and cached analyses over HTTP.
// It is read-only: writes go through the CLI and the scheduled refresh.
type Server struct {
	store   *storage.VideoStore
	monitor *monitoring.Monitor
	port    int
}

func New(store *storage.VideoStore, monitor *monitoring.Monitor, port int) *Server {
	return &Server{store: store, monitor: monitor, port: port}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET"},
	}))

	r.GET("/health", s.handleHealth)
	r.GET("/api/niches", s.handleNiches)
	r.GET("/api/niches/:niche/videos", s.handleVideos)
	r.GET("/api/niches/:niche/dna", s.handleDNA)

	return r
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	return s.Router().Run(fmt.Sprintf(":%d", s.port))
}

func (s *Server) handleHealth(c *gin.Context) {
	status := http.StatusOK
	if s.monitor != nil && !s.monitor.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	body := gin.H{"status": "ok"}
	if s.monitor != nil {
		body["last_run"] = s.monitor.GetStatusSummary()
	}
	if status != http.StatusOK {
		body["status"] = "unhealthy"
	}
	c.JSON(status, body)
}

func (s *Server) handleNiches(c *gin.Context) {
	db, err := s.store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type nicheInfo struct {
		Niche      models.Niche `json:"niche"`
		VideoCount int          `json:"video_count"`
	}
	out := make([]nicheInfo, 0, len(models.Niches))
	for _, n := range models.Niches {
		out = append(out, nicheInfo{Niche: n, VideoCount: len(db[n])})
	}
	c.JSON(http.StatusOK, gin.H{"niches": out})
}

func (s *Server) handleVideos(c *gin.Context) {
	niche, ok := s.nicheParam(c)
	if !ok {
		return
	}

	videos, err := s.store.Videos(niche)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	limit := len(videos)
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		if n < limit {
			limit = n
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"niche":  niche,
		"count":  len(videos),
		"videos": videos[:limit],
	})
}

func (s *Server) handleDNA(c *gin.Context) {
	niche, ok := s.nicheParam(c)
	if !ok {
		return
	}

	dna, err := s.store.LoadDNA(niche)
	if err != nil {
		if errors.Is(err, storage.ErrStoreUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no analysis cached for %s, run a dna build first", niche)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dna)
}

func (s *Server) nicheParam(c *gin.Context) (models.Niche, bool) {
	raw := c.Param("niche")
	if !models.ValidNiche(raw) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown niche %q", raw)})
		return "", false
	}
	return models.Niche(raw), true
}
