package index

import (
	"context"

	"github.com/nguyentantai21042004/transcript-chat/internal/segmenter"
)

// Index holds one transcript's chunks and their embeddings and answers
// similarity queries over them. The exhaustive implementation in this
// package scores every chunk; an ANN-backed implementation could sit
// behind the same interface for much larger transcripts.
type Index interface {
	// Build cleans, embeds and stores the chunks, replacing any
	// previous contents wholesale.
	Build(ctx context.Context, raw []segmenter.RawChunk) error

	// Search returns a timestamp-annotated context block for the
	// query, or "" when the index is empty.
	Search(ctx context.Context, query string, topK, window int) (string, error)

	// Len reports the number of indexed chunks
	Len() int

	// Chunks returns a copy of the indexed chunks in transcript order
	Chunks() []Chunk
}
