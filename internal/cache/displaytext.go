package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/statementdb-go/internal/translation"
)

// DisplayTextCache caches rendered preferred-language text for translatable
// units. List views resolve the same translatables over and over; the rendered
// string is tiny and safe to cache because writes go through SetTranslation,
// which invalidates the entry.
type DisplayTextCache struct {
	cacher       Cacher
	translations *translation.Store
	ttl          time.Duration
}

// NewDisplayTextCache creates a display-text cache over the given backend.
func NewDisplayTextCache(cacher Cacher, translations *translation.Store, ttl time.Duration) *DisplayTextCache {
	return &DisplayTextCache{
		cacher:       cacher,
		translations: translations,
		ttl:          ttl,
	}
}

func displayKey(id int64) string {
	return fmt.Sprintf("display:%d", id)
}

// Render returns the rendered display text for a translatable, from cache when
// possible. Absent translations render as the usual placeholder and are cached
// like any other value.
func (c *DisplayTextCache) Render(ctx context.Context, id int64) (string, error) {
	key := displayKey(id)

	if cached, err := c.cacher.Get(ctx, key); err == nil {
		return string(cached), nil
	} else if !errors.Is(err, ErrCacheMiss) {
		return "", err
	}

	text, err := c.translations.Render(ctx, id)
	if err != nil {
		return "", err
	}

	if err := c.cacher.Set(ctx, key, []byte(text), c.ttl); err != nil {
		return "", err
	}
	return text, nil
}

// SetTranslation writes through to the translation store and invalidates the
// cached display text for the translatable.
func (c *DisplayTextCache) SetTranslation(ctx context.Context, id int64, language, text string) error {
	if err := c.translations.Set(ctx, id, language, text); err != nil {
		return err
	}
	return c.cacher.Delete(ctx, displayKey(id))
}

// Invalidate drops the cached display text for a translatable.
func (c *DisplayTextCache) Invalidate(ctx context.Context, id int64) error {
	return c.cacher.Delete(ctx, displayKey(id))
}

// Stats returns backend statistics when the backend provides them.
func (c *DisplayTextCache) Stats() (Stats, bool) {
	if sp, ok := c.cacher.(StatsProvider); ok {
		return sp.Stats(), true
	}
	return Stats{}, false
}
