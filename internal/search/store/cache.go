package store

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"parts-finder/internal/search/model"
	"parts-finder/internal/search/service"
)

// ResultCache memoizes search outcomes. Cached outcomes are shared between
// callers and must not be modified.
type ResultCache struct {
	lru *expirable.LRU[string, *model.Outcome]
}

func NewResultCache(size int, ttl time.Duration) *ResultCache {
	if size <= 0 {
		return nil
	}
	return &ResultCache{lru: expirable.NewLRU[string, *model.Outcome](size, nil, ttl)}
}

func (c *ResultCache) Get(key string) (*model.Outcome, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(key)
}

func (c *ResultCache) Add(key string, o *model.Outcome) {
	if c == nil {
		return
	}
	c.lru.Add(key, o)
}

func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// cacheKey includes the dataset version so a re-upload never serves stale
// results.
func cacheKey(u Upload, field string, terms []string, opt model.Options) string {
	return strings.Join([]string{
		u.ID, u.Version, string(opt.Mode), field, strings.Join(terms, "\x00"),
	}, "\x1f")
}

// Searcher runs searches against stored uploads with the cache in front.
type Searcher struct {
	uploads *Store
	cache   *ResultCache
}

func NewSearcher(uploads *Store, cache *ResultCache) *Searcher {
	return &Searcher{uploads: uploads, cache: cache}
}

// Search reports whether the outcome came from the cache.
func (s *Searcher) Search(fileID, field string, terms []string, opt model.Options) (*model.Outcome, bool, error) {
	u, err := s.uploads.Get(fileID)
	if err != nil {
		return nil, false, err
	}
	clean := service.CleanTerms(terms)
	key := cacheKey(u, strings.TrimSpace(field), clean, opt)
	if o, ok := s.cache.Get(key); ok {
		return o, true, nil
	}
	o, err := service.Search(u.Dataset, field, clean, opt)
	if err != nil {
		return nil, false, err
	}
	s.cache.Add(key, o)
	return o, false, nil
}
