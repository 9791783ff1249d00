// Package images downloads cover images into a local directory so reports can
// reference them without hotlinking the catalog CDN.
package images

import (
	"context"
	"crypto/sha1" //nolint:gosec // content addressing, not security
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dchest/safefile"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/gamelist/internal/transport"
	"github.com/agentstation/gamelist/pkg/constants"
	"github.com/agentstation/gamelist/pkg/errors"
	"github.com/agentstation/gamelist/pkg/logging"
)

// Fetch outcomes reported to the observer.
const (
	OutcomeDownloaded = "downloaded"
	OutcomeCached     = "cached"
	OutcomeFailed     = "failed"
)

// Cache stores images under dir, named by the SHA-1 of their URL.
type Cache struct {
	dir       string
	transport *transport.Client
	limit     int
	observe   func(outcome string)
}

// Option configures a Cache.
type Option func(*Cache)

// WithConcurrency bounds parallel downloads.
func WithConcurrency(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(t *transport.Client) Option {
	return func(c *Cache) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithObserver is called once per fetch with its outcome.
func WithObserver(fn func(outcome string)) Option {
	return func(c *Cache) {
		c.observe = fn
	}
}

// New creates a cache rooted at dir.
func New(dir string, opts ...Option) *Cache {
	c := &Cache{
		dir:       dir,
		transport: transport.New(nil),
		limit:     constants.MaxConcurrentImageFetches,
		observe:   func(string) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns where the image for rawURL is stored, whether or not it has
// been fetched yet.
func (c *Cache) Path(rawURL string) string {
	return filepath.Join(c.dir, FileName(rawURL))
}

// FileName is the hex SHA-1 of rawURL plus the URL path's extension,
// defaulting to .jpg.
func FileName(rawURL string) string {
	sum := sha1.Sum([]byte(rawURL)) //nolint:gosec // content addressing
	ext := ".jpg"
	if u, err := url.Parse(rawURL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e != "" && len(e) <= 5 {
			ext = e
		}
	}
	return hex.EncodeToString(sum[:]) + ext
}

// Fetch downloads rawURL unless it is already cached and returns its local
// path.
func (c *Cache) Fetch(ctx context.Context, rawURL string) (string, error) {
	dest := c.Path(rawURL)
	if _, err := os.Stat(dest); err == nil {
		c.observe(OutcomeCached)
		return dest, nil
	}

	if err := c.download(ctx, rawURL, dest); err != nil {
		c.observe(OutcomeFailed)
		return "", err
	}
	c.observe(OutcomeDownloaded)
	return dest, nil
}

func (c *Cache) download(ctx context.Context, rawURL, dest string) error {
	if err := os.MkdirAll(c.dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", c.dir, err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ImageFetchTimeout)
	defer cancel()

	resp, err := c.transport.GetRaw(ctx, rawURL)
	if err != nil {
		return errors.WrapIO("fetch", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.NewIOError("fetch", rawURL, errors.New(resp.Status))
	}

	f, err := safefile.Create(dest, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", dest, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return errors.WrapIO("write", dest, err)
	}
	if err := f.Commit(); err != nil {
		return errors.WrapIO("commit", dest, err)
	}
	return nil
}

// FetchAll fetches every distinct non-empty URL with bounded concurrency and
// returns the local path for each one that succeeded. Individual failures are
// logged and left out of the map; only cancellation is returned as an error.
func (c *Cache) FetchAll(ctx context.Context, urls []string) (map[string]string, error) {
	var (
		mu    sync.Mutex
		paths = make(map[string]string, len(urls))
		seen  = make(map[string]struct{}, len(urls))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)

	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := c.Fetch(gctx, u)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logging.Ctx(ctx).Warn().Err(err).Str("url", u).Msg("Failed to fetch cover image")
				return nil
			}
			mu.Lock()
			paths[u] = p
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return paths, err
	}

	logging.Ctx(ctx).Debug().
		Int("requested", len(seen)).
		Int("available", len(paths)).
		Msg("Cover images ready")
	return paths, nil
}
