package downloader

import (
	"context"
	"sync"
	"time"
)

// Caches downloaded documents in memory.
type Memory struct {
	mutex sync.Mutex
	cache map[string]cacheEntry

	TimeNow func() time.Time
}

type cacheEntry struct {
	body       []byte
	expiration time.Time
}

func NewMemory() *Memory {
	return &Memory{
		cache:   map[string]cacheEntry{},
		TimeNow: time.Now,
	}
}

func (d *Memory) Get(
	ctx context.Context,
	url string,
	headers map[string]string,
	options GetOptions,
) ([]byte, error) {
	if options.Cache {
		d.mutex.Lock()
		defer d.mutex.Unlock()

		if entry, ok := d.cache[url]; ok && entry.expiration.After(d.TimeNow()) {
			return entry.body, nil
		}
	}

	body, err := HTTPGet(ctx, url, headers, options)
	if err != nil {
		return nil, err
	}

	if options.Cache {
		d.cache[url] = cacheEntry{
			body:       body,
			expiration: d.TimeNow().Add(options.CacheTTL),
		}
	}

	return body, nil
}
