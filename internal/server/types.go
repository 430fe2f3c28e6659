package server

import (
	"context"
	"image"
	"net/http"

	"github.com/photomat/photomat/internal/config"
	"github.com/photomat/photomat/internal/sizing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// pipelineInterface defines the methods needed by the server from a pipeline.
type pipelineInterface interface {
	Resize(ctx context.Context, img image.Image, desired sizing.Size, thumbnail bool) (image.Image, error)
	SegmentBlend(ctx context.Context, fg, bg image.Image) (image.Image, error)
	SegmentMask(ctx context.Context, img image.Image) (image.Image, error)
	ScreenBound() int
	Close() error
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	pipeline    pipelineInterface
	maxUploadMB int64
	timeoutSec  int
	status      *statusTracker
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// SizeResponse is returned by the size endpoint.
type SizeResponse struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ErrorResponse is the JSON body of all error replies.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer creates a server around an already-built pipeline.
func NewServer(cfg config.ServerConfig, pl pipelineInterface) *Server {
	return &Server{
		pipeline:    pl,
		maxUploadMB: int64(cfg.MaxUploadMB),
		timeoutSec:  cfg.TimeoutSec,
		status:      newStatusTracker(),
	}
}

// Close releases server resources.
func (s *Server) Close() error {
	if s.pipeline != nil {
		return s.pipeline.Close()
	}
	return nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/size", s.corsMiddleware(s.sizeHandler))
	mux.HandleFunc("/resize", s.corsMiddleware(s.resizeHandler))
	mux.HandleFunc("/segment", s.corsMiddleware(s.segmentHandler))
	mux.HandleFunc("/status/ws", s.statusWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}

// Handler returns the fully routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.SetupRoutes(mux)
	return mux
}
