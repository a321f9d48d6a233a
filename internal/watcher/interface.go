package watcher

import "context"

// Watcher defines the interface for monitoring the caption drop directory
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles a newly dropped subtitle file
type EventHandler func(ctx context.Context, filePath string) error
