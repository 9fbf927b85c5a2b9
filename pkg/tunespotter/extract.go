package tunespotter

import (
	"context"
	"fmt"
	"sync"
)

// windowFailure records one window whose extraction failed. Failed windows
// still count toward segments_attempted but never produce an outcome.
type windowFailure struct {
	Window SampleWindow
	Err    error
}

// extractSegments resolves each sample window to audio bytes. The media is
// obtained once and every window is cut from the local copy. A single
// window's failure never aborts the batch; if every window fails the batch
// surfaces ErrExtractionFailed.
func (s *service) extractSegments(ctx context.Context, source MediaSource, ref *MediaReference, windows []SampleWindow) ([]*AudioSegment, []windowFailure, error) {
	// Lone-window fast path: no batching machinery needed.
	if len(windows) == 1 {
		seg, err := s.cutWindow(ctx, source, ref, windows[0])
		if err != nil {
			return nil, []windowFailure{{Window: windows[0], Err: err}},
				fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return []*AudioSegment{seg}, nil, nil
	}

	segs := make([]*AudioSegment, len(windows))
	errs := make([]error, len(windows))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.config.MaxWorkers)
	for _, w := range windows {
		wg.Add(1)
		sem <- struct{}{}
		go func(w SampleWindow) {
			defer wg.Done()
			defer func() { <-sem }()
			seg, err := s.cutWindow(ctx, source, ref, w)
			// Results are keyed by the window's own index, never by
			// completion order.
			if err != nil {
				errs[w.Index] = err
				return
			}
			segs[w.Index] = seg
		}(w)
	}
	wg.Wait()

	extracted := make([]*AudioSegment, 0, len(windows))
	var failures []windowFailure
	for i, w := range windows {
		if errs[i] != nil {
			s.log.Warnf("window %d [%ds+%ds] extraction failed: %v", w.Index, w.StartSec, w.LengthSec, errs[i])
			failures = append(failures, windowFailure{Window: w, Err: errs[i]})
			continue
		}
		extracted = append(extracted, segs[i])
	}

	if len(extracted) == 0 {
		return nil, failures, fmt.Errorf("%w: %v", ErrExtractionFailed, failures[0].Err)
	}
	return extracted, failures, nil
}

func (s *service) cutWindow(ctx context.Context, source MediaSource, ref *MediaReference, w SampleWindow) (*AudioSegment, error) {
	data, err := source.Cut(ctx, w.StartSec, w.LengthSec)
	if err != nil {
		return nil, err
	}
	return &AudioSegment{
		Window:   w,
		Data:     data,
		Filename: SegmentFilename(ref.Title, w, ref.TotalDurationSec),
	}, nil
}
