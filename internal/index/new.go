package index

import (
	"sync"

	"github.com/nguyentantai21042004/transcript-chat/internal/logger"
	"github.com/nguyentantai21042004/transcript-chat/pkg/embedder"
)

type implIndex struct {
	embedder embedder.Embedder
	logger   logger.Logger

	// mu guards chunks and embeddings together: a reader always sees
	// matching lengths
	mu         sync.RWMutex
	chunks     []Chunk
	embeddings [][]float32
}

// New creates an empty Index backed by the given embedding provider.
// Queries against it return no context until Build succeeds.
func New(emb embedder.Embedder, log logger.Logger) Index {
	return &implIndex{
		embedder: emb,
		logger:   log,
	}
}
