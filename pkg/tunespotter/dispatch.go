package tunespotter

import (
	"context"
	"sync"
)

// dispatchSegments submits each extracted segment to the recognition
// collaborator and normalizes the responses. A segment's Error outcome is
// recorded and the loop continues, mirroring the extractor's fault
// isolation. The returned slice is ordered by window index.
func (s *service) dispatchSegments(ctx context.Context, segments []*AudioSegment) []RecognitionOutcome {
	outcomes := make([]RecognitionOutcome, len(segments))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.config.MaxWorkers)
	for i, seg := range segments {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, seg *AudioSegment) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = s.recognizeSegment(ctx, seg)
		}(i, seg)
	}
	wg.Wait()

	return outcomes
}

// recognizeSegment maps one collaborator call to a RecognitionOutcome.
func (s *service) recognizeSegment(ctx context.Context, seg *AudioSegment) RecognitionOutcome {
	ctx, cancel := context.WithTimeout(ctx, s.config.RecognizeTimeout)
	defer cancel()

	ident, err := s.recognizer.Identify(ctx, seg.Data, seg.Filename)
	if err != nil {
		s.log.Warnf("window %d recognition failed: %v", seg.Window.Index, err)
		return RecognitionOutcome{
			WindowIndex: seg.Window.Index,
			Status:      StatusError,
			ErrMessage:  err.Error(),
		}
	}

	if !ident.Matched {
		return RecognitionOutcome{
			WindowIndex: seg.Window.Index,
			Status:      StatusNotFound,
		}
	}

	s.log.Infof("window %d identified: %s by %s", seg.Window.Index, ident.Title, ident.Artist)
	return RecognitionOutcome{
		WindowIndex: seg.Window.Index,
		Status:      StatusSuccess,
		Title:       ident.Title,
		Artist:      ident.Artist,
		Album:       ident.Album,
		ReleaseDate: ident.ReleaseDate,
		Confidence:  NominalConfidence,
	}
}
