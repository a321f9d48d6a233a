package segmenter

import (
	"math"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcript-chat/internal/captions"
)

func TestMerge(t *testing.T) {
	fragments := []captions.Fragment{
		{Text: "hello there", Start: 0, Duration: 2},
		{Text: "how are you", Start: 2, Duration: 2},
		{Text: "today my friend", Start: 4, Duration: 3},
		{Text: "it is a fine day", Start: 7, Duration: 2},
	}

	chunks := Merge(fragments, 35)

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}

	if chunks[0].Text != "hello there how are you" {
		t.Errorf("First chunk text = %q", chunks[0].Text)
	}
	if chunks[1].Text != "today my friend it is a fine day" {
		t.Errorf("Second chunk text = %q", chunks[1].Text)
	}

	if chunks[0].Start != 0 {
		t.Errorf("First chunk start = %v, want 0", chunks[0].Start)
	}
	if chunks[1].Start != 4 {
		t.Errorf("Second chunk start = %v, want 4", chunks[1].Start)
	}
}

func TestMerge_PreservesTotalDuration(t *testing.T) {
	fragments := []captions.Fragment{
		{Text: "one", Start: 0, Duration: 1.5},
		{Text: "two", Start: 1.5, Duration: 2.25},
		{Text: "three", Start: 3.75, Duration: 0.5},
		{Text: "four", Start: 4.25, Duration: 3},
		{Text: "five", Start: 7.25, Duration: 1},
	}

	var want float64
	for _, f := range fragments {
		want += f.Duration
	}

	chunks := Merge(fragments, 8)

	var got float64
	for _, c := range chunks {
		got += c.Duration
	}

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Total chunk duration = %v, want %v", got, want)
	}

	// Chunks must stay ordered and non-overlapping
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Start < chunks[i-1].Start {
			t.Errorf("Chunk %d starts before chunk %d", i, i-1)
		}
	}
}

func TestMerge_OversizedFragmentNeverSplit(t *testing.T) {
	long := strings.Repeat("word ", 50) // far beyond target
	fragments := []captions.Fragment{
		{Text: "short intro", Start: 0, Duration: 1},
		{Text: long, Start: 1, Duration: 10},
		{Text: "short outro", Start: 11, Duration: 1},
	}

	chunks := Merge(fragments, 20)

	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	if chunks[1].Text != long {
		t.Errorf("Oversized fragment was modified: %q", chunks[1].Text)
	}
}

func TestMerge_SingleOversizedFragmentAlone(t *testing.T) {
	long := strings.Repeat("x", 100)
	chunks := Merge([]captions.Fragment{{Text: long, Start: 0, Duration: 5}}, 10)

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != long {
		t.Errorf("Chunk text = %q", chunks[0].Text)
	}
}

func TestMerge_Empty(t *testing.T) {
	if chunks := Merge(nil, 500); len(chunks) != 0 {
		t.Errorf("Expected no chunks, got %d", len(chunks))
	}
}

func TestMerge_EndTimeFromSummedDurations(t *testing.T) {
	// Overlapping fragments: end time comes from summed durations,
	// not from the last fragment's real end
	fragments := []captions.Fragment{
		{Text: "a", Start: 0, Duration: 3},
		{Text: "b", Start: 2, Duration: 3},
	}

	chunks := Merge(fragments, 500)

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].End() != 6 {
		t.Errorf("End() = %v, want 6 (summed durations)", chunks[0].End())
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"annotations", "hello [laughs] world (pause)", "hello world"},
		{"music cue", "[music] welcome back", "welcome back"},
		{"whitespace runs", "too   many\t spaces \n here", "too many spaces here"},
		{"leading and trailing", "  trimmed  ", "trimmed"},
		{"nested brackets stop at first close", "a [b [c] d] e", "a d] e"},
		{"all annotation", "[applause] (laughter)", ""},
		{"plain text", "nothing to remove", "nothing to remove"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
