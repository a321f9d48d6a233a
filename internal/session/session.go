package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/transcript-chat/internal/captions"
	"github.com/nguyentantai21042004/transcript-chat/internal/index"
	"github.com/nguyentantai21042004/transcript-chat/internal/segmenter"
)

// Load segments and indexes the fragments, then swaps the new index in
// as the current transcript. The build runs on a fresh index so a
// failure leaves the previous transcript untouched.
func (s *implSession) Load(ctx context.Context, identifier string, fragments []captions.Fragment) (LoadOutcome, error) {
	if identifier == "" || strings.ContainsAny(identifier, " \t\n") {
		return LoadedNew, fmt.Errorf("%w: %q", captions.ErrInvalidIdentifier, identifier)
	}

	s.mu.RLock()
	loaded := s.identifier
	s.mu.RUnlock()

	if identifier == loaded {
		s.logger.Info(ctx, "Transcript %s already loaded, skipping rebuild", identifier)
		return AlreadyLoaded, nil
	}

	if err := captions.ValidateFragments(fragments); err != nil {
		return LoadedNew, fmt.Errorf("validate fragments for %s: %w", identifier, err)
	}

	raw := segmenter.Merge(fragments, s.cfg.Retrieval.ChunkSize)

	next := index.New(s.embedder, s.logger)
	if err := next.Build(ctx, raw); err != nil {
		return LoadedNew, fmt.Errorf("build index for %s: %w", identifier, err)
	}

	s.mu.Lock()
	s.current = next
	s.identifier = identifier
	s.mu.Unlock()

	s.logger.Info(ctx, "Loaded transcript %s (%d chunks)", identifier, next.Len())
	return LoadedNew, nil
}

// ContextFor is the sole read path for the chat layer
func (s *implSession) ContextFor(ctx context.Context, query string) (string, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		// Nothing loaded is a defined empty result, not an error
		return "", nil
	}

	return current.Search(ctx, query, s.cfg.Retrieval.TopK, s.cfg.Retrieval.Window)
}

// Current returns the identifier of the loaded transcript, or ""
func (s *implSession) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identifier
}

// Chunks returns the loaded transcript's chunks, or nil
func (s *implSession) Chunks() []index.Chunk {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return nil
	}
	return current.Chunks()
}
