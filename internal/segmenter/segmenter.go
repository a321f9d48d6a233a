package segmenter

import (
	"github.com/nguyentantai21042004/transcript-chat/internal/captions"
)

// RawChunk is a run of caption fragments merged up to a target character
// length, before cleaning and embedding.
type RawChunk struct {
	Text     string
	Start    float64 // seconds
	Duration float64 // summed durations of the merged fragments
}

// End returns the end time of the chunk. It is derived from the summed
// fragment durations rather than the last fragment's end time, so
// overlapping caption fragments can make it drift slightly from real
// playback time.
func (c RawChunk) End() float64 {
	return c.Start + c.Duration
}

// Merge accumulates ordered fragments into chunks close to targetSize
// characters. A chunk is closed when appending the next fragment's text
// would push it past targetSize; since the check only fires on a
// non-empty chunk, a single oversized fragment always becomes its own
// chunk and is never split.
func Merge(fragments []captions.Fragment, targetSize int) []RawChunk {
	if len(fragments) == 0 {
		return nil
	}

	var chunks []RawChunk
	current := RawChunk{Start: fragments[0].Start}

	for _, fragment := range fragments {
		if len(current.Text)+len(fragment.Text) > targetSize && current.Text != "" {
			chunks = append(chunks, current)
			current = RawChunk{Start: fragment.Start}
		}

		if current.Text != "" {
			current.Text += " "
		}
		current.Text += fragment.Text
		current.Duration += fragment.Duration
	}

	if current.Text != "" {
		chunks = append(chunks, current)
	}

	return chunks
}
