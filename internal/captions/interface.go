package captions

import "context"

// Source defines the interface for fetching a video's caption fragments
type Source interface {
	Fetch(ctx context.Context, videoID string) ([]Fragment, error)
}
