// Package media implements the media retrieval collaborator on top of
// yt-dlp (via go-ytdlp) and ffmpeg.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/SliskoGG/Tune-Spotter/pkg/tunespotter"
)

const (
	probeTimeout    = 30 * time.Second
	downloadTimeout = 3 * time.Minute
	cutTimeout      = 30 * time.Second
)

// Fetcher downloads remote media through yt-dlp and cuts windows from the
// local copy with ffmpeg, so multi-window sampling costs one download.
type Fetcher struct {
	tempDir string
}

func NewFetcher(tempDir string) *Fetcher {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Fetcher{tempDir: tempDir}
}

// ytMetadata is the subset of yt-dlp's JSON dump we care about.
type ytMetadata struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

// Probe resolves title and duration without downloading the media.
func (f *Fetcher) Probe(ctx context.Context, url string) (*tunespotter.MediaReference, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, probeTimeout)
		defer cancel()
	}

	res, err := ytdlp.New().
		NoPlaylist().
		NoWarnings().
		SkipDownload().
		DumpSingleJSON().
		Run(ctx, url)
	if err != nil {
		return nil, classify(url, res, err)
	}

	var meta ytMetadata
	if err := json.Unmarshal([]byte(res.Stdout), &meta); err != nil {
		return nil, tunespotter.NewRetrievalError(tunespotter.RetrievalNoStreamFound, url,
			fmt.Errorf("parsing yt-dlp metadata: %w", err))
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = "Unknown"
	}

	return &tunespotter.MediaReference{
		SourceURL:        url,
		Title:            title,
		TotalDurationSec: int(meta.Duration),
	}, nil
}

// Open downloads the best audio stream into a per-request temp directory.
func (f *Fetcher) Open(ctx context.Context, url string) (tunespotter.MediaSource, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, downloadTimeout)
		defer cancel()
	}

	dir, err := os.MkdirTemp(f.tempDir, "tunespotter-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}

	res, err := ytdlp.New().
		NoPlaylist().
		NoWarnings().
		Format("ba").
		Output(filepath.Join(dir, "source.%(ext)s")).
		Run(ctx, url)
	if err != nil {
		os.RemoveAll(dir)
		return nil, classify(url, res, err)
	}

	path, err := findDownloaded(dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, tunespotter.NewRetrievalError(tunespotter.RetrievalNoStreamFound, url, err)
	}

	return &localSource{path: path, dir: dir}, nil
}

// findDownloaded locates the downloaded audio file by checking common
// audio extensions.
func findDownloaded(dir string) (string, error) {
	extensions := []string{".m4a", ".webm", ".opus", ".mp3", ".aac", ".ogg"}
	for _, ext := range extensions {
		candidate := filepath.Join(dir, "source"+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("downloaded audio file not found (checked extensions: %v)", extensions)
}

// classify maps a yt-dlp failure onto the retrieval error taxonomy.
func classify(url string, res *ytdlp.Result, err error) *tunespotter.RetrievalError {
	text := err.Error()
	if res != nil {
		text += "\n" + res.Stderr
	}

	kind := tunespotter.RetrievalNetworkError
	switch {
	case strings.Contains(text, "Unsupported URL"),
		strings.Contains(text, "is not a valid URL"):
		kind = tunespotter.RetrievalUnsupportedSource
	case strings.Contains(text, "Requested format is not available"),
		strings.Contains(text, "No video formats found"),
		strings.Contains(text, "no suitable format"):
		kind = tunespotter.RetrievalNoStreamFound
	}
	return tunespotter.NewRetrievalError(kind, url, err)
}

// localSource is one downloaded media item. Cut may be called from several
// goroutines; each window writes its own output file.
type localSource struct {
	path string
	dir  string
}

// Cut extracts [startSec, startSec+lengthSec) as MP3 bytes using ffmpeg.
func (s *localSource) Cut(ctx context.Context, startSec, lengthSec int) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cutTimeout)
		defer cancel()
	}

	outPath := filepath.Join(s.dir, fmt.Sprintf("segment_%d_%d.mp3", startSec, lengthSec))
	defer os.Remove(outPath)

	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-y",
		"-v", "quiet",
		"-i", s.path,
		"-ss", strconv.Itoa(startSec),
		"-t", strconv.Itoa(lengthSec),
		"-acodec", "mp3",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("ffmpeg cut failed: %v (%s)", err, out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("reading cut segment: %w", err)
	}
	return data, nil
}

func (s *localSource) Close() error {
	return os.RemoveAll(s.dir)
}
