package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcript-chat/internal/captions"
	"github.com/nguyentantai21042004/transcript-chat/internal/config"
	"github.com/nguyentantai21042004/transcript-chat/internal/index"
	"github.com/nguyentantai21042004/transcript-chat/internal/logger"
)

// hashEmbedder produces a deterministic vector per text, good enough to
// exercise load/search plumbing without fixture tables.
type hashEmbedder struct {
	calls int
}

func (h *hashEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	h.calls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, 8)
		for j, r := range text {
			v[j%8] += float32(r) / 1000.0
		}
		out[i] = v
	}
	return out, nil
}

func (h *hashEmbedder) Dimension() int    { return 8 }
func (h *hashEmbedder) ModelInfo() string { return "hash-embedder" }

func testConfig() *config.Config {
	cfg := &config.Config{}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func testFragments(n int) []captions.Fragment {
	fragments := make([]captions.Fragment, n)
	for i := range fragments {
		fragments[i] = captions.Fragment{
			Text:     fmt.Sprintf("spoken line number %d of the recording", i),
			Start:    float64(i * 4),
			Duration: 4,
		}
	}
	return fragments
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	sess := New(testConfig(), &hashEmbedder{}, logger.New("error"))

	outcome, err := sess.Load(ctx, "pAcF3GV4ygM", testFragments(20))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if outcome != LoadedNew {
		t.Errorf("Load() outcome = %v, want LoadedNew", outcome)
	}
	if sess.Current() != "pAcF3GV4ygM" {
		t.Errorf("Current() = %q, want pAcF3GV4ygM", sess.Current())
	}

	got, err := sess.ContextFor(ctx, "recording")
	if err != nil {
		t.Fatalf("ContextFor() error = %v", err)
	}
	if got == "" {
		t.Error("ContextFor() returned no context for a loaded transcript")
	}
	if !strings.Contains(got, "]: ") {
		t.Errorf("Context missing timestamp annotations: %q", got)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	ctx := context.Background()
	emb := &hashEmbedder{}
	sess := New(testConfig(), emb, logger.New("error"))

	if _, err := sess.Load(ctx, "pAcF3GV4ygM", testFragments(5)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	buildCalls := emb.calls

	outcome, err := sess.Load(ctx, "pAcF3GV4ygM", testFragments(5))
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if outcome != AlreadyLoaded {
		t.Errorf("second Load() outcome = %v, want AlreadyLoaded", outcome)
	}
	if emb.calls != buildCalls {
		t.Errorf("Repeat load re-embedded: %d calls, want %d", emb.calls, buildCalls)
	}
}

func TestLoad_FailurePreservesSession(t *testing.T) {
	ctx := context.Background()
	sess := New(testConfig(), &hashEmbedder{}, logger.New("error"))

	if _, err := sess.Load(ctx, "goodVideo01", testFragments(10)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	before, err := sess.ContextFor(ctx, "recording")
	if err != nil {
		t.Fatalf("ContextFor() error = %v", err)
	}

	// An empty transcript cannot be indexed
	_, err = sess.Load(ctx, "emptyVideo1", nil)
	if !errors.Is(err, index.ErrEmptyTranscript) {
		t.Fatalf("Load() error = %v, want ErrEmptyTranscript", err)
	}

	// Prior transcript stays current and queries behave identically
	if sess.Current() != "goodVideo01" {
		t.Errorf("Current() = %q after failed load, want goodVideo01", sess.Current())
	}
	after, err := sess.ContextFor(ctx, "recording")
	if err != nil {
		t.Fatalf("ContextFor() after failed load error = %v", err)
	}
	if after != before {
		t.Errorf("ContextFor() changed after failed load:\nbefore: %q\nafter:  %q", before, after)
	}
}

func TestLoad_AllAnnotationTranscript(t *testing.T) {
	ctx := context.Background()
	sess := New(testConfig(), &hashEmbedder{}, logger.New("error"))

	fragments := []captions.Fragment{
		{Text: "[music]", Start: 0, Duration: 3},
		{Text: "(applause)", Start: 3, Duration: 3},
	}

	_, err := sess.Load(ctx, "musicOnly01", fragments)
	if !errors.Is(err, index.ErrEmptyTranscript) {
		t.Errorf("Load() error = %v, want ErrEmptyTranscript", err)
	}
}

func TestLoad_InvalidIdentifier(t *testing.T) {
	ctx := context.Background()
	sess := New(testConfig(), &hashEmbedder{}, logger.New("error"))

	for _, id := range []string{"", "has spaces", "has\ttab"} {
		_, err := sess.Load(ctx, id, testFragments(3))
		if !errors.Is(err, captions.ErrInvalidIdentifier) {
			t.Errorf("Load(%q) error = %v, want ErrInvalidIdentifier", id, err)
		}
	}
}

func TestLoad_MalformedFragments(t *testing.T) {
	ctx := context.Background()
	sess := New(testConfig(), &hashEmbedder{}, logger.New("error"))

	fragments := []captions.Fragment{
		{Text: "fine", Start: 0, Duration: 2},
		{Text: "broken", Start: 2, Duration: -1},
	}

	if _, err := sess.Load(ctx, "brokenVid01", fragments); err == nil {
		t.Error("Load() should reject malformed fragments")
	}
}

func TestContextFor_NothingLoaded(t *testing.T) {
	sess := New(testConfig(), &hashEmbedder{}, logger.New("error"))

	got, err := sess.ContextFor(context.Background(), "anything")
	if err != nil {
		t.Fatalf("ContextFor() error = %v", err)
	}
	if got != "" {
		t.Errorf("ContextFor() with nothing loaded = %q, want \"\"", got)
	}
}

func TestLoad_ReplacesTranscript(t *testing.T) {
	ctx := context.Background()
	sess := New(testConfig(), &hashEmbedder{}, logger.New("error"))

	if _, err := sess.Load(ctx, "firstVideo1", testFragments(5)); err != nil {
		t.Fatal(err)
	}

	outcome, err := sess.Load(ctx, "secondVide1", testFragments(8))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if outcome != LoadedNew {
		t.Errorf("Load() outcome = %v, want LoadedNew", outcome)
	}
	if sess.Current() != "secondVide1" {
		t.Errorf("Current() = %q, want secondVide1", sess.Current())
	}
}
