// Package store keeps named graph documents ("snippets") so they can be
// pasted again later.
//
// # Backends
//
// [Open] selects a backend from a URL:
//
//	file:///home/me/.local/share/graphclip/snippets  one <name>.json per snippet
//	memory://                                         process-local, for tests and serve
//	redis://localhost:6379/0                          keys graphclip:snippet:<name>
//	mongodb://localhost:27017/graphclip               collection "snippets"
//
// Every backend stores the document bytes unchanged; callers validate them
// with the codec before storing.
//
// # Names
//
// Snippet names are checked with [errors.ValidateName] before they reach a
// backend, so file-backed stores never see path separators.
//
// [errors.ValidateName]: github.com/matzehuels/graphclip/pkg/errors.ValidateName
package store

import (
	"context"
	"net/url"
	"strings"

	"github.com/matzehuels/graphclip/pkg/errors"
	"github.com/matzehuels/graphclip/pkg/observability"
)

// Store is a shelf of named documents.
type Store interface {
	// Get returns the snippet and whether it exists.
	Get(ctx context.Context, name string) ([]byte, bool, error)

	// Put creates or replaces a snippet.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a snippet. Deleting a missing snippet is not an error.
	Delete(ctx context.Context, name string) error

	// List returns all snippet names in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Open connects to the store at rawURL. A bare path is treated as a file
// store directory.
func Open(ctx context.Context, rawURL string) (Store, error) {
	if rawURL == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty store URL")
	}
	if !strings.Contains(rawURL, "://") {
		return newChecked("file", func() (Store, error) { return NewFileStore(rawURL) })
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "store URL %q", rawURL)
	}
	switch u.Scheme {
	case "file":
		dir := u.Path
		if u.Host != "" {
			dir = u.Host + u.Path
		}
		return newChecked("file", func() (Store, error) { return NewFileStore(dir) })
	case "memory", "mem":
		return newChecked("memory", func() (Store, error) { return NewMemoryStore(), nil })
	case "redis", "rediss":
		return newChecked("redis", func() (Store, error) { return NewRedisStore(ctx, rawURL) })
	case "mongodb", "mongodb+srv":
		return newChecked("mongodb", func() (Store, error) { return NewMongoStore(ctx, rawURL) })
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported store scheme %q", u.Scheme)
}

func newChecked(backend string, open func() (Store, error)) (Store, error) {
	s, err := open()
	if err != nil {
		return nil, err
	}
	return Checked(s, backend), nil
}

// checked validates names and reports operations to the observability hooks.
type checked struct {
	inner   Store
	backend string
}

// Checked wraps s so that every name is validated and every operation is
// reported to [observability.Store] under the given backend label.
func Checked(s Store, backend string) Store {
	if c, ok := s.(*checked); ok {
		return c
	}
	return &checked{inner: s, backend: backend}
}

func (c *checked) Get(ctx context.Context, name string) ([]byte, bool, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, false, err
	}
	data, ok, err := c.inner.Get(ctx, name)
	if err == nil {
		observability.Store().OnGet(ctx, c.backend, name, ok)
	}
	return data, ok, err
}

func (c *checked) Put(ctx context.Context, name string, data []byte) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	if err := c.inner.Put(ctx, name, data); err != nil {
		return err
	}
	observability.Store().OnPut(ctx, c.backend, name, len(data))
	return nil
}

func (c *checked) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	if err := c.inner.Delete(ctx, name); err != nil {
		return err
	}
	observability.Store().OnDelete(ctx, c.backend, name)
	return nil
}

func (c *checked) List(ctx context.Context) ([]string, error) { return c.inner.List(ctx) }
func (c *checked) Close() error                               { return c.inner.Close() }
