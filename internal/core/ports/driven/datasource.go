package driven

import "context"

// DataSource retrieves province data resources by key (for example "western-cape").
// Implementations return raw bytes; decoding and validation belong to the core.
type DataSource interface {
	// Fetch retrieves the resource for key.
	// Returns an error wrapping domain.ErrNotFound if the resource does not exist.
	Fetch(ctx context.Context, key string) ([]byte, error)

	// Describe returns a human-readable location, such as a directory or URL.
	Describe() string
}

// DataWatcher reports province resources that changed after they were read.
type DataWatcher interface {
	// Watch starts watching and returns a channel of changed resource keys.
	// The channel is closed when ctx is cancelled or the watcher is closed.
	Watch(ctx context.Context) (<-chan string, error)

	// Close stops watching and releases resources.
	Close() error
}
