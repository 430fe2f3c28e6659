package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/photomat/photomat/internal/pipeline"
	"github.com/photomat/photomat/internal/sizing"
	"github.com/photomat/photomat/internal/version"
	_ "golang.org/x/image/bmp"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode health response", "error", err)
	}
}

// sizeHandler computes the output size the resize policy would pick, without
// touching any pixels. Useful for clients that lay out before uploading.
func (s *Server) sizeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	original := sizing.Size{
		Width:  intParam(q.Get("original_width")),
		Height: intParam(q.Get("original_height")),
	}
	desired := sizing.Size{
		Width:  intParam(q.Get("width")),
		Height: intParam(q.Get("height")),
	}
	thumbnail := boolParam(q.Get("thumbnail"))

	out, err := sizing.ComputeOutputSize(original, desired, thumbnail, s.pipeline.ScreenBound())
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(SizeResponse{Width: out.Width, Height: out.Height}); err != nil {
		slog.Error("failed to encode size response", "error", err)
	}
}

// resizeHandler resizes an uploaded image and returns it as PNG.
func (s *Server) resizeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	img, ok := s.formImage(w, r, "image", true)
	if !ok {
		return
	}

	desired := sizing.Size{
		Width:  intParam(r.FormValue("width")),
		Height: intParam(r.FormValue("height")),
	}
	thumbnail := boolParam(r.FormValue("thumbnail"))

	ctx, cancel := s.requestContext(r)
	defer cancel()

	start := time.Now()
	out, err := s.pipeline.Resize(ctx, img, desired, thumbnail)
	if err != nil {
		s.status.recordFailure()
		processRequestsTotal.WithLabelValues("resize", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("resize failed: %v", err), http.StatusUnprocessableEntity)
		return
	}
	s.status.recordSuccess()
	processRequestsTotal.WithLabelValues("resize", "success").Inc()
	processDuration.WithLabelValues("resize").Observe(time.Since(start).Seconds())

	s.writePNG(w, out)
}

// segmentHandler segments an uploaded image. With a "background" upload the
// masked foreground is composited onto it; without one the raw mask is
// returned. The result is always PNG.
func (s *Server) segmentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	img, ok := s.formImage(w, r, "image", true)
	if !ok {
		return
	}
	bg, ok := s.formImage(w, r, "background", false)
	if !ok {
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	start := time.Now()
	var out image.Image
	var err error
	if bg != nil {
		out, err = s.pipeline.SegmentBlend(ctx, img, bg)
	} else {
		out, err = s.pipeline.SegmentMask(ctx, img)
	}
	if err != nil {
		s.status.recordFailure()
		processRequestsTotal.WithLabelValues("segment", "error").Inc()
		if errors.Is(err, pipeline.ErrNoSegmenter) {
			s.writeErrorResponse(w, "segmentation model not loaded", http.StatusServiceUnavailable)
			return
		}
		s.writeErrorResponse(w, fmt.Sprintf("segmentation failed: %v", err), http.StatusUnprocessableEntity)
		return
	}
	s.status.recordSuccess()
	processRequestsTotal.WithLabelValues("segment", "success").Inc()
	processDuration.WithLabelValues("segment").Observe(time.Since(start).Seconds())

	s.writePNG(w, out)
}

// formImage parses the multipart form (once) and decodes the named file
// field. The ok result reports whether the handler should proceed: a missing
// or broken required upload and a broken optional upload write an error
// response and return false; a missing optional field returns (nil, true).
func (s *Server) formImage(w http.ResponseWriter, r *http.Request, field string, required bool) (image.Image, bool) {
	if r.MultipartForm == nil {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)
		if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
			s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
			return nil, false
		}
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if required {
			s.writeErrorResponse(w, fmt.Sprintf("No %s file provided", field), http.StatusBadRequest)
			return nil, false
		}
		return nil, true
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	uploadSizeBytes.Observe(float64(header.Size))

	img, err := imaging.Decode(file)
	if err != nil {
		s.writeErrorResponse(w, "Invalid image format", http.StatusBadRequest)
		return nil, false
	}
	return img, true
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.timeoutSec <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), time.Duration(s.timeoutSec)*time.Second)
}

func (s *Server) writePNG(w http.ResponseWriter, img image.Image) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Image-Width", strconv.Itoa(img.Bounds().Dx()))
	w.Header().Set("X-Image-Height", strconv.Itoa(img.Bounds().Dy()))
	if err := png.Encode(w, img); err != nil {
		slog.Error("failed to encode PNG response", "error", err)
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

func intParam(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func boolParam(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
