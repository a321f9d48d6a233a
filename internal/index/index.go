package index

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/transcript-chat/internal/segmenter"
)

// ErrEmptyTranscript is reported when a transcript yields no indexable
// chunks, either because it has none or because cleaning removed all
// their text.
var ErrEmptyTranscript = errors.New("transcript has no indexable content")

// Chunk is a merged, cleaned span of transcript text with its timing
// and embedding. The embedding is set once during Build and never
// mutated afterwards.
type Chunk struct {
	Text      string
	StartTime float64 // seconds
	EndTime   float64 // seconds
	Embedding []float32
}

// TimestampRange renders the chunk's timing as "MM:SS - MM:SS".
// Minutes are not capped at 60, so long videos render as e.g. "75:30".
func (c Chunk) TimestampRange() string {
	return fmt.Sprintf("%02d:%02d - %02d:%02d",
		int(c.StartTime)/60, int(c.StartTime)%60,
		int(c.EndTime)/60, int(c.EndTime)%60)
}

// Build cleans the raw chunks, drops the ones whose text cleans to
// empty, embeds the survivors in one batched provider call and swaps
// the result in atomically.
func (idx *implIndex) Build(ctx context.Context, raw []segmenter.RawChunk) error {
	if len(raw) == 0 {
		return ErrEmptyTranscript
	}

	chunks := make([]Chunk, 0, len(raw))
	for _, rc := range raw {
		text := segmenter.Clean(rc.Text)
		if text == "" {
			// Pure annotation chunks ([music], (applause)) carry no
			// retrievable content
			continue
		}
		chunks = append(chunks, Chunk{
			Text:      text,
			StartTime: rc.Start,
			EndTime:   rc.End(),
		})
	}
	if len(chunks) == 0 {
		return ErrEmptyTranscript
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embeddings, err := idx.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed %d chunks: %w", len(chunks), err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding provider returned %d vectors for %d chunks", len(embeddings), len(chunks))
	}

	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	idx.mu.Lock()
	idx.chunks = chunks
	idx.embeddings = embeddings
	idx.mu.Unlock()

	idx.logger.Info(ctx, "Indexed %d chunks (%s)", len(chunks), idx.embedder.ModelInfo())
	return nil
}

// Search embeds the query, scores every chunk by dot product, expands a
// window of surrounding chunks around the topK matches and renders the
// union as a timestamp-annotated context block. The windowing is
// deliberate: a single matching chunk is rarely a complete thought, so
// its neighbours ride along to preserve the surrounding discourse.
func (idx *implIndex) Search(ctx context.Context, query string, topK, window int) (string, error) {
	idx.mu.RLock()
	chunks := idx.chunks
	embeddings := idx.embeddings
	idx.mu.RUnlock()

	if len(chunks) == 0 {
		return "", nil
	}

	queryEmbeddings, err := idx.embedder.Embed(ctx, []string{query})
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}
	queryEmbedding := queryEmbeddings[0]

	// Exhaustive scoring: fine for the hundreds of chunks a single
	// transcript produces
	scores := make([]float32, len(chunks))
	for i := range chunks {
		scores[i] = dotProduct(embeddings[i], queryEmbedding)
	}

	// Rank indices by score, lower index first on ties
	order := make([]int, len(chunks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topK > len(order) {
		topK = len(order)
	}
	if topK < 0 {
		topK = 0
	}

	// Expand each match to [i-window, i+window], clamped, and union
	selected := make([]bool, len(chunks))
	for _, i := range order[:topK] {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window
		if hi > len(chunks)-1 {
			hi = len(chunks) - 1
		}
		for j := lo; j <= hi; j++ {
			selected[j] = true
		}
	}

	var parts []string
	for i, c := range chunks {
		if selected[i] {
			parts = append(parts, fmt.Sprintf("[%s]: %s", c.TimestampRange(), c.Text))
		}
	}

	idx.logger.Debug(ctx, "Search selected %d of %d chunks (top_k=%d, window=%d)", len(parts), len(chunks), topK, window)
	return strings.Join(parts, "\n\n"), nil
}

// Len reports the number of indexed chunks
func (idx *implIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.chunks)
}

// Chunks returns a copy of the indexed chunks in transcript order
func (idx *implIndex) Chunks() []Chunk {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]Chunk, len(idx.chunks))
	copy(out, idx.chunks)
	return out
}

// dotProduct computes the raw dot product of two vectors. Embeddings
// are unit-normalized by the provider, so this equals their cosine
// similarity.
func dotProduct(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
