package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driven"
)

// Ensure DataSource implements the interface.
var _ driven.DataSource = (*DataSource)(nil)

// Extension is the file extension of province resources.
const Extension = ".json"

// DataSource reads <root>/<key>.json.
type DataSource struct {
	root string
}

// DefaultRoot returns ~/.sanumbers/data.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sanumbers", "data"), nil
}

// NewDataSource creates a directory data source.
// If root is empty, defaults to DefaultRoot. The directory need not exist yet;
// fetches fail with domain.ErrNotFound until it does.
func NewDataSource(root string) (*DataSource, error) {
	if root == "" {
		dir, err := DefaultRoot()
		if err != nil {
			return nil, err
		}
		root = dir
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve data root: %w", err)
	}
	return &DataSource{root: abs}, nil
}

// Root returns the absolute data directory.
func (d *DataSource) Root() string {
	return d.root
}

// Fetch reads the resource for key.
func (d *DataSource) Fetch(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := d.pathFor(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Describe returns the data directory.
func (d *DataSource) Describe() string {
	return d.root
}

// pathFor maps key to a file inside root, rejecting keys that would escape it.
func (d *DataSource) pathFor(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: invalid resource key %q", domain.ErrInvalidInput, key)
	}
	return filepath.Join(d.root, key+Extension), nil
}

// KeyFor returns the resource key for a path inside root, or false if the
// path is not a province resource.
func KeyFor(path string) (string, bool) {
	base := filepath.Base(path)
	if filepath.Ext(base) != Extension {
		return "", false
	}
	key := strings.TrimSuffix(base, Extension)
	if key == "" || strings.HasPrefix(key, ".") {
		return "", false
	}
	return key, true
}
