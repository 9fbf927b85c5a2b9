package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/SliskoGG/Tune-Spotter/pkg/logger"
	"github.com/SliskoGG/Tune-Spotter/pkg/tunespotter"
	"github.com/SliskoGG/Tune-Spotter/pkg/tunespotter/storage"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service tunespotter.Service
	store   *storage.Store
	config  *ServerConfig
	log     *logger.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	DBPath         string
	TempDir        string
	AuddConfigured bool
	AllowedOrigins []string
}

// NewServer creates a new server instance
func NewServer(service tunespotter.Service, store *storage.Store, config *ServerConfig) *Server {
	return &Server{
		service: service,
		store:   store,
		config:  config,
		log:     logger.GetLogger(),
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// respondVerdict maps a verdict onto the wire: success and not_found are
// normal outcomes, an error verdict is a server-side failure.
func (s *Server) respondVerdict(w http.ResponseWriter, verdict *tunespotter.RecognitionVerdict) {
	statusCode := http.StatusOK
	if verdict.Status == tunespotter.StatusError {
		statusCode = http.StatusInternalServerError
	}
	s.respondJSON(w, statusCode, newVerdictResponse(verdict))
}

// userError reports whether err stems from the caller's input rather than
// from this service or its collaborators.
func userError(err error) bool {
	var retrievalErr *tunespotter.RetrievalError
	return errors.Is(err, tunespotter.ErrInvalidTimeFormat) ||
		errors.Is(err, tunespotter.ErrInvalidRange) ||
		errors.As(err, &retrievalErr)
}

// handleRoot handles GET /api/
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Music Recognition API is running",
		"version": "1.0.0",
	})
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.log.Errorf("Health check failed: %v", err)
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	auddState := "not_configured"
	if s.config.AuddConfigured {
		auddState = "configured"
	}

	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		AuddAPI:   auddState,
		Timestamp: time.Now().UTC(),
	})
}

// handleRecognizeFile handles POST /api/recognize/file (multipart upload)
func (s *Server) handleRecognizeFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+4096)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("File too large or malformed. Maximum size is %s.", humanize.IBytes(MaxUploadBytes)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		s.respondError(w, http.StatusBadRequest, "Invalid file type. Please upload an audio file.")
		return
	}
	if header.Size > MaxUploadBytes {
		s.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("File too large. Maximum size is %s.", humanize.IBytes(MaxUploadBytes)))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	filename := header.Filename
	if filename == "" {
		filename = "audio.mp3"
	}

	s.log.Infof("Recognizing uploaded clip %s (%s)", filename, humanize.IBytes(uint64(len(data))))
	verdict, err := s.service.RecognizeClip(ctx, data, filename)
	if err != nil {
		s.log.Errorf("Clip recognition failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Recognition failed: %v", err))
		return
	}
	s.respondVerdict(w, verdict)
}

// handleRecognizeURL handles POST /api/recognize/url
func (s *Server) handleRecognizeURL(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	broad, _ := strconv.ParseBool(r.FormValue("broad_sampling"))
	req := RecognizeURLRequest{
		URL:           r.FormValue("url"),
		StartTime:     r.FormValue("start_time"),
		EndTime:       r.FormValue("end_time"),
		BroadSampling: broad,
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Infof("Recognizing from URL: %s", req.URL)
	verdict, err := s.service.RecognizeURL(ctx, req.URL, req.StartTime, req.EndTime, req.BroadSampling)
	if err != nil {
		if userError(err) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Errorf("URL recognition failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Recognition failed: %v", err))
		return
	}
	s.respondVerdict(w, verdict)
}

// handleExtractURL handles POST /api/extract/url
func (s *Server) handleExtractURL(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	req := ExtractURLRequest{
		URL:       r.FormValue("url"),
		StartTime: r.FormValue("start_time"),
		EndTime:   r.FormValue("end_time"),
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Infof("Extracting audio from URL: %s", req.URL)
	segment, _, err := s.service.ExtractURL(ctx, req.URL, req.StartTime, req.EndTime)
	if err != nil {
		if userError(err) {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to extract audio from URL: %v", err))
			return
		}
		s.log.Errorf("Audio extraction failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Audio extraction failed: %v", err))
		return
	}

	s.log.Infof("Extracted %s (%s)", segment.Filename, humanize.IBytes(uint64(len(segment.Data))))
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", segment.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(segment.Data)))
	if _, err := w.Write(segment.Data); err != nil {
		s.log.Errorf("Failed to write audio response: %v", err)
	}
}

// handleRecognizeFileRoute routes requests to /api/recognize/file
func (s *Server) handleRecognizeFileRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.handleRecognizeFile(w, r)
}

// handleRecognizeURLRoute routes requests to /api/recognize/url
func (s *Server) handleRecognizeURLRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.handleRecognizeURL(w, r)
}

// handleExtractURLRoute routes requests to /api/extract/url
func (s *Server) handleExtractURLRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.handleExtractURL(w, r)
}
