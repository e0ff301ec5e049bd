package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/karavil/cinema-booking-api/internal/cache"
	"github.com/karavil/cinema-booking-api/internal/domain"
)

const allMoviesKey = "movies:all"

func movieKey(id string) string {
	return fmt.Sprintf("movies:%s", id)
}

// CachedClient wraps a catalog Client with a read-through cache. Successful
// lookups refresh the cache; when the remote transport fails, the last cached
// value is served instead (possibly absent if never cached). Any failure on
// the write path, including a cache write after a successful remote call, is
// surfaced as domain.UnexpectedError rather than masked.
type CachedClient struct {
	remote Client
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedClient(remote Client, cache cache.Cache, ttl time.Duration, logger *slog.Logger) *CachedClient {
	return &CachedClient{
		remote: remote,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedClient) GetAll(ctx context.Context) ([]Movie, error) {
	movies, err := c.remote.GetAll(ctx)
	if err == nil {
		if len(movies) > 0 {
			err = c.cache.Set(ctx, allMoviesKey, movies, c.ttl)
			if err != nil {
				return nil, domain.UnexpectedError{Err: err}
			}
		}

		return movies, nil
	}

	if errors.Is(err, ErrCatalogUnavailable) {
		c.logger.Warn("movie catalog unreachable, falling back to cache", "error", err)

		var cached []Movie

		found, err := c.cache.Get(ctx, allMoviesKey, &cached)
		if err != nil {
			return nil, err
		}

		if !found {
			return nil, nil
		}

		return cached, nil
	}

	return nil, domain.UnexpectedError{Err: err}
}

func (c *CachedClient) GetByID(ctx context.Context, id string) (*Movie, error) {
	movie, err := c.remote.GetByID(ctx, id)
	if err == nil {
		if movie != nil {
			err = c.cache.Set(ctx, movieKey(id), movie, c.ttl)
			if err != nil {
				return nil, domain.UnexpectedError{Err: err}
			}
		}

		return movie, nil
	}

	if errors.Is(err, ErrCatalogUnavailable) {
		c.logger.Warn("movie catalog unreachable, falling back to cache", "movie_id", id, "error", err)

		var cached Movie

		found, err := c.cache.Get(ctx, movieKey(id), &cached)
		if err != nil {
			return nil, err
		}

		if !found {
			return nil, nil
		}

		return &cached, nil
	}

	return nil, domain.UnexpectedError{Err: err}
}
