package cache

import (
	"errors"

	"github.com/dgnsrekt/bible-speak/speak"
	"github.com/dgnsrekt/bible-speak/verse"
)

// Source wraps a speak.ContentSource and caches verse text by document and
// verse. Other lookups pass straight through.
type Source struct {
	speak.ContentSource
	lru *LRU
}

// NewSource wraps src with a cache of capacity verses.
func NewSource(src speak.ContentSource, capacity int) *Source {
	return &Source{ContentSource: src, lru: NewLRU(capacity)}
}

// VerseText returns the cached text or reads it from the wrapped source.
// Only successful reads and ErrContentUnavailable are cached.
func (s *Source) VerseText(doc verse.Document, pos verse.Position) (string, error) {
	key := doc.ID + ":" + pos.OSISRef()

	if text, missing, ok := s.lru.Get(key); ok {
		if missing {
			return "", speak.ErrContentUnavailable
		}
		return text, nil
	}

	text, err := s.ContentSource.VerseText(doc, pos)
	switch {
	case err == nil:
		s.lru.Put(key, text)
	case errors.Is(err, speak.ErrContentUnavailable):
		s.lru.PutMissing(key)
	}
	return text, err
}

// Stats returns the cache statistics.
func (s *Source) Stats() Stats {
	return s.lru.Stats()
}

// Purge empties the cache, e.g. after the library was reloaded.
func (s *Source) Purge() {
	s.lru.Clear()
}
