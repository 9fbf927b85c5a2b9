package main

import (
	"fmt"
	"time"

	"github.com/SliskoGG/Tune-Spotter/pkg/tunespotter"
)

// MaxUploadBytes caps uploaded clips at 10 MiB.
const MaxUploadBytes = 10 << 20

// RecognizeURLRequest is the form payload for POST /api/recognize/url.
type RecognizeURLRequest struct {
	URL           string
	StartTime     string
	EndTime       string
	BroadSampling bool
}

// Validate checks if the request is valid.
func (r *RecognizeURLRequest) Validate() error {
	if r.URL == "" {
		return fmt.Errorf("url is required")
	}
	return nil
}

// ExtractURLRequest is the form payload for POST /api/extract/url.
type ExtractURLRequest struct {
	URL       string
	StartTime string
	EndTime   string
}

// Validate checks if the request is valid.
func (r *ExtractURLRequest) Validate() error {
	if r.URL == "" {
		return fmt.Errorf("url is required")
	}
	return nil
}

// VerdictResponse is the serialized recognition verdict.
type VerdictResponse struct {
	ID                string    `json:"id"`
	Status            string    `json:"status"`
	Title             string    `json:"title,omitempty"`
	Artist            string    `json:"artist,omitempty"`
	Album             string    `json:"album,omitempty"`
	ReleaseDate       string    `json:"release_date,omitempty"`
	Confidence        float64   `json:"confidence,omitempty"`
	Message           string    `json:"message,omitempty"`
	SegmentsAttempted int       `json:"segments_attempted"`
	SegmentsSucceeded int       `json:"segments_succeeded"`
	Timestamp         time.Time `json:"timestamp"`
}

func newVerdictResponse(v *tunespotter.RecognitionVerdict) VerdictResponse {
	return VerdictResponse{
		ID:                v.ID,
		Status:            string(v.Status),
		Title:             v.Title,
		Artist:            v.Artist,
		Album:             v.Album,
		ReleaseDate:       v.ReleaseDate,
		Confidence:        v.Confidence,
		Message:           v.Message,
		SegmentsAttempted: v.SegmentsAttempted,
		SegmentsSucceeded: v.SegmentsSucceeded,
		Timestamp:         v.Timestamp,
	}
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	AuddAPI   string    `json:"audd_api"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
