package session

import (
	"context"

	"github.com/nguyentantai21042004/transcript-chat/internal/captions"
	"github.com/nguyentantai21042004/transcript-chat/internal/index"
)

// LoadOutcome reports what a Load call did
type LoadOutcome int

const (
	// LoadedNew means a fresh index was built and swapped in
	LoadedNew LoadOutcome = iota
	// AlreadyLoaded means the identifier matched the current transcript
	// and no rebuild happened
	AlreadyLoaded
)

// Session owns the currently loaded transcript. It holds at most one
// index at a time; loading a different transcript replaces it wholesale.
type Session interface {
	// Load builds an index for the fragments and makes it current.
	// Loading the identifier that is already current is a no-op. On
	// failure the previously loaded transcript stays usable.
	Load(ctx context.Context, identifier string, fragments []captions.Fragment) (LoadOutcome, error)

	// ContextFor returns the retrieval context for a query against the
	// current transcript, or "" when nothing is loaded.
	ContextFor(ctx context.Context, query string) (string, error)

	// Current returns the identifier of the loaded transcript, or ""
	Current() string

	// Chunks returns the loaded transcript's chunks in order, or nil
	// when nothing is loaded. Used by the export step.
	Chunks() []index.Chunk
}
