package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driven"
)

// Ensure DataSource implements the interface.
var _ driven.DataSource = (*DataSource)(nil)

// DataSource serves province resources from memory.
type DataSource struct {
	mu        sync.RWMutex
	resources map[string][]byte
	failures  map[string]error
	fetches   map[string]int
}

// NewDataSource creates an empty in-memory data source.
func NewDataSource() *DataSource {
	return &DataSource{
		resources: make(map[string][]byte),
		failures:  make(map[string]error),
		fetches:   make(map[string]int),
	}
}

// Put stores the raw resource for key.
func (d *DataSource) Put(key string, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resources[key] = data
	delete(d.failures, key)
}

// Fail makes every fetch of key return err.
func (d *DataSource) Fail(key string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[key] = err
}

// Remove deletes the resource for key.
func (d *DataSource) Remove(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.resources, key)
	delete(d.failures, key)
}

// Fetch returns the stored resource for key.
func (d *DataSource) Fetch(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.fetches[key]++
	if err, ok := d.failures[key]; ok {
		return nil, err
	}
	data, ok := d.resources[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Fetches returns how many times key was fetched.
func (d *DataSource) Fetches(key string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fetches[key]
}

// Describe returns a human-readable location.
func (d *DataSource) Describe() string {
	return "memory"
}
