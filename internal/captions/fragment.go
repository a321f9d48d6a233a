package captions

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNoTranscript is reported when the caption provider has no
	// transcript for the requested video.
	ErrNoTranscript = errors.New("no transcript available")

	// ErrInvalidIdentifier is reported for malformed video URLs or ids,
	// before any fetch or indexing work starts.
	ErrInvalidIdentifier = errors.New("invalid video identifier")
)

// Fragment is a single time-stamped caption line as delivered by the
// provider. Fragments are ordered by start time and may be much shorter
// than a sentence.
type Fragment struct {
	Text     string
	Start    float64 // seconds from the beginning of the video
	Duration float64 // seconds
}

// End returns the end time of the fragment
func (f Fragment) End() float64 {
	return f.Start + f.Duration
}

var (
	reYouTubeURL = regexp.MustCompile(`(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	reVideoID    = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ExtractVideoID pulls the 11-character video id out of a YouTube URL.
// A bare video id is accepted as-is.
func ExtractVideoID(url string) (string, error) {
	if reVideoID.MatchString(url) {
		return url, nil
	}
	m := reYouTubeURL.FindStringSubmatch(url)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, url)
	}
	return m[1], nil
}

// ValidateFragments rejects malformed provider output before it reaches
// the segmenter: negative timings and out-of-order fragments.
func ValidateFragments(fragments []Fragment) error {
	prevStart := 0.0
	for i, f := range fragments {
		if f.Start < 0 {
			return fmt.Errorf("fragment %d: negative start %.3f", i, f.Start)
		}
		if f.Duration < 0 {
			return fmt.Errorf("fragment %d: negative duration %.3f", i, f.Duration)
		}
		if f.Start < prevStart {
			return fmt.Errorf("fragment %d: start %.3f before previous fragment %.3f", i, f.Start, prevStart)
		}
		prevStart = f.Start
	}
	return nil
}
