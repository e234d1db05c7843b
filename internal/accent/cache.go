package accent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/singleflight"

	"github.com/five82/shikidesk/internal/apperr"
)

const (
	// FetchTimeout bounds every image fetch.
	FetchTimeout = 5 * time.Second
	// MaxImageBytes is the largest poster that is downloaded and decoded.
	MaxImageBytes = 2 << 20
)

// Doer executes HTTP requests. *http.Client implements it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Cache memoizes accent colors by exact URL string for the life of the
// process. There is no TTL and no eviction.
//
// The lock covers only map access, so two concurrent misses on the same URL
// may both fetch; the results are identical and the last write wins. Enable
// WithSingleFlight to collapse them into one fetch.
type Cache struct {
	doer       Doer
	logger     hclog.Logger
	translator apperr.Translator
	group      *singleflight.Group

	mu     sync.Mutex
	colors map[string]string
}

// CacheOption customizes a Cache.
type CacheOption func(*Cache)

// WithLogger sets the logger for fetch diagnostics.
func WithLogger(l hclog.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTranslator sets the message locale of returned errors.
func WithTranslator(t apperr.Translator) CacheOption {
	return func(c *Cache) { c.translator = t }
}

// WithSingleFlight makes concurrent misses on one URL share a single fetch.
func WithSingleFlight() CacheOption {
	return func(c *Cache) { c.group = &singleflight.Group{} }
}

// NewCache builds an empty cache. A nil doer uses a fresh http.Client.
func NewCache(doer Doer, opts ...CacheOption) *Cache {
	if doer == nil {
		doer = &http.Client{}
	}
	c := &Cache{
		doer:   doer,
		logger: hclog.NewNullLogger(),
		colors: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len reports the number of cached colors.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.colors)
}

func (c *Cache) lookup(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	color, ok := c.colors[url]
	return color, ok
}

func (c *Cache) store(url, color string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.colors[url] = color
}

// Get returns the accent color of the image at url, fetching and computing it
// on a miss. Failures are returned as transport errors and are not cached.
func (c *Cache) Get(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", c.translator.Validation("image url is empty")
	}
	if color, ok := c.lookup(url); ok {
		return color, nil
	}

	if c.group == nil {
		return c.compute(ctx, url)
	}
	// The shared fetch outlives any single caller; FetchTimeout bounds it.
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(url, func() (any, error) {
		if color, ok := c.lookup(url); ok {
			return color, nil
		}
		return c.compute(detached, url)
	})
	select {
	case <-ctx.Done():
		return "", c.translator.FromImage(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			c.logger.Trace("accent fetch shared", "url", url)
		}
		return res.Val.(string), nil
	}
}

func (c *Cache) compute(ctx context.Context, url string) (string, error) {
	started := time.Now()
	color, err := c.fetch(ctx, url)
	if err != nil {
		c.logger.Debug("accent fetch failed", "url", url, "error", err)
		return "", c.translator.FromImage(err)
	}
	c.store(url, color)
	c.logger.Debug("accent computed", "url", url, "color", color, "elapsed", time.Since(started))
	return color, nil
}

func (c *Cache) fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := c.doer.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}
	if resp.ContentLength > MaxImageBytes {
		c.logger.Debug("accent image too large", "url", url, "content_length", resp.ContentLength)
		return Fallback, nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		c.logger.Debug("accent image too large", "url", url, "read", len(data))
		return Fallback, nil
	}

	img, err := Decode(data, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}
	return Extract(img), nil
}
