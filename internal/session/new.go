package session

import (
	"sync"

	"github.com/nguyentantai21042004/transcript-chat/internal/config"
	"github.com/nguyentantai21042004/transcript-chat/internal/index"
	"github.com/nguyentantai21042004/transcript-chat/internal/logger"
	"github.com/nguyentantai21042004/transcript-chat/pkg/embedder"
)

type implSession struct {
	cfg      *config.Config
	embedder embedder.Embedder
	logger   logger.Logger

	// mu guards current and identifier together, so a query in flight
	// observes either the old complete index or the new one
	mu         sync.RWMutex
	current    index.Index
	identifier string
}

// New creates an empty Session. Nothing is retrievable until the first
// successful Load.
func New(cfg *config.Config, emb embedder.Embedder, log logger.Logger) Session {
	return &implSession{
		cfg:      cfg,
		embedder: emb,
		logger:   log,
	}
}
