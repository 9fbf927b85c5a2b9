package tunespotter

import (
	"context"
	"errors"
	"fmt"

	"github.com/SliskoGG/Tune-Spotter/pkg/logger"
)

// service is the default implementation of the Service interface.
type service struct {
	config     *Config
	fetcher    MediaFetcher
	recognizer Recognizer
	log        Logger
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Fetcher == nil {
		return nil, errors.New("a media fetcher is required")
	}
	if cfg.Recognizer == nil {
		return nil, errors.New("a recognizer is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	return &service{
		config:     cfg,
		fetcher:    cfg.Fetcher,
		recognizer: cfg.Recognizer,
		log:        cfg.Logger,
	}, nil
}

// RecognizeClip identifies an uploaded clip directly: one synthetic
// segment, no sampling.
func (s *service) RecognizeClip(ctx context.Context, data []byte, filename string) (*RecognitionVerdict, error) {
	seg := &AudioSegment{
		Window:   SampleWindow{Index: 0},
		Data:     data,
		Filename: filename,
	}
	outcome := s.recognizeSegment(ctx, seg)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Aggregate([]RecognitionOutcome{outcome}, 1), nil
}

// RecognizeURL runs the full sampling pipeline: probe, window planning,
// segment extraction, per-segment recognition, and aggregation.
func (s *service) RecognizeURL(ctx context.Context, url, startSpec, endSpec string, broadSampling bool) (*RecognitionVerdict, error) {
	ref, err := s.fetcher.Probe(ctx, url)
	if err != nil {
		return nil, err
	}
	s.log.Infof("probed %q: %ds", ref.Title, ref.TotalDurationSec)

	rng, err := ResolveRange(startSpec, endSpec, ref.TotalDurationSec)
	if err != nil {
		return nil, err
	}

	windows := PlanWindows(ref.TotalDurationSec, rng, broadSampling, s.config.WindowLengthSec)
	s.log.Infof("sampling %d window(s) from %s", len(windows), url)

	source, err := s.fetcher.Open(ctx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.log.Errorf("media open failed: %v", err)
		return errorVerdict(fmt.Sprintf("audio extraction failed: %v", err), len(windows)), nil
	}
	defer source.Close()

	segments, _, err := s.extractSegments(ctx, source, ref, windows)
	if err != nil {
		// Total extraction failure short-circuits to an Error verdict
		// before any recognition runs.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return errorVerdict(fmt.Sprintf("audio extraction failed: %v", err), len(windows)), nil
	}

	outcomes := s.dispatchSegments(ctx, segments)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	verdict := Aggregate(outcomes, len(windows))
	s.log.Infof("verdict %s: %d/%d segment(s) succeeded", verdict.Status, verdict.SegmentsSucceeded, verdict.SegmentsAttempted)
	return verdict, nil
}

// ExtractURL cuts one audio segment from a remote source. Without broad
// sampling the planner always yields exactly one window, so the extractor's
// fast path applies.
func (s *service) ExtractURL(ctx context.Context, url, startSpec, endSpec string) (*AudioSegment, *MediaReference, error) {
	ref, err := s.fetcher.Probe(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	rng, err := ResolveRange(startSpec, endSpec, ref.TotalDurationSec)
	if err != nil {
		return nil, nil, err
	}
	// Extraction serves the requested span in full: an open or absent end
	// reaches the end of the media rather than the default sample length.
	if rng == nil {
		rng = &TimeRange{}
	}
	if !rng.HasEnd {
		rng.EndSec = ref.TotalDurationSec
		rng.HasEnd = true
	}

	windows := PlanWindows(ref.TotalDurationSec, rng, false, s.config.WindowLengthSec)

	source, err := s.fetcher.Open(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	defer source.Close()

	segments, _, err := s.extractSegments(ctx, source, ref, windows)
	if err != nil {
		return nil, nil, err
	}
	return segments[0], ref, nil
}
