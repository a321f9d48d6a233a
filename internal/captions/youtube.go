package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/transcript-chat/internal/logger"
	"github.com/nguyentantai21042004/transcript-chat/pkg/executor"
)

type implYouTubeSource struct {
	executor executor.Executor
	logger   logger.Logger
	tempDir  string
	language string
}

// NewYouTubeSource creates a Source that fetches captions with yt-dlp
func NewYouTubeSource(exec executor.Executor, log logger.Logger, tempDir string) Source {
	return &implYouTubeSource{
		executor: exec,
		logger:   log,
		tempDir:  tempDir,
		language: "en",
	}
}

// Fetch downloads the caption track for a video as json3 and parses it
// into fragments. Manual subtitles are preferred, auto-generated ones
// are accepted as fallback.
func (s *implYouTubeSource) Fetch(ctx context.Context, videoID string) ([]Fragment, error) {
	if !reVideoID.MatchString(videoID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, videoID)
	}

	workDir, err := os.MkdirTemp(s.tempDir, "captions-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	s.logger.Info(ctx, "Fetching captions for video: %s", videoID)

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-format", "json3",
		"--sub-langs", s.language,
		"-o", filepath.Join(workDir, "%(id)s"),
		"https://www.youtube.com/watch?v=" + videoID,
	}

	if _, err := s.executor.Execute(ctx, "yt-dlp", args...); err != nil {
		return nil, fmt.Errorf("yt-dlp fetch captions: %w", err)
	}

	subPath := filepath.Join(workDir, fmt.Sprintf("%s.%s.json3", videoID, s.language))
	data, err := os.ReadFile(subPath)
	if err != nil {
		if os.IsNotExist(err) {
			// yt-dlp succeeded but wrote no subtitle file: the video
			// has no caption track in the requested language
			return nil, fmt.Errorf("video %s: %w", videoID, ErrNoTranscript)
		}
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}

	fragments, err := parseJSON3(data)
	if err != nil {
		return nil, fmt.Errorf("parse captions for %s: %w", videoID, err)
	}
	if len(fragments) == 0 {
		return nil, fmt.Errorf("video %s: %w", videoID, ErrNoTranscript)
	}

	s.logger.Info(ctx, "Fetched %d caption fragments for video %s", len(fragments), videoID)
	return fragments, nil
}

// json3 is YouTube's timed-text format: a flat list of events carrying
// millisecond timings and one or more text segments each.
type json3Doc struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMs    int64      `json:"tStartMs"`
	DurationMs int64      `json:"dDurationMs"`
	Segs       []json3Seg `json:"segs"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

// parseJSON3 converts a json3 caption document into ordered fragments.
// Events without text (timing markers, window definitions) are skipped.
func parseJSON3(data []byte) ([]Fragment, error) {
	var doc json3Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json3: %w", err)
	}

	var fragments []Fragment
	for _, ev := range doc.Events {
		var text strings.Builder
		for _, seg := range ev.Segs {
			text.WriteString(seg.UTF8)
		}

		cleaned := strings.TrimSpace(strings.ReplaceAll(text.String(), "\n", " "))
		if cleaned == "" {
			continue
		}

		fragments = append(fragments, Fragment{
			Text:     cleaned,
			Start:    float64(ev.StartMs) / 1000.0,
			Duration: float64(ev.DurationMs) / 1000.0,
		})
	}

	if err := ValidateFragments(fragments); err != nil {
		return nil, fmt.Errorf("validate fragments: %w", err)
	}

	return fragments, nil
}
