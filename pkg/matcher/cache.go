// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import "sync"

// maxCacheEntries bounds the cache; label values of tables can change between polls.
const maxCacheEntries = 10000

type cachedMatcher struct {
	matcher Matcher
	size    int

	mu    sync.RWMutex
	cache map[string]bool
}

// WithCache remembers the results of m, holding at most maxCacheEntries values.
func WithCache(m Matcher) Matcher {
	return WithCacheSize(m, maxCacheEntries)
}

// WithCacheSize is WithCache with a custom bound. The cache is emptied when it is full.
func WithCacheSize(m Matcher, size int) Matcher {
	if _, ok := m.(constMatcher); ok {
		return m
	}
	if size <= 0 {
		size = maxCacheEntries
	}
	return &cachedMatcher{matcher: m, size: size, cache: make(map[string]bool)}
}

func (m *cachedMatcher) Match(b []byte) bool {
	return m.lookup(string(b), func() bool { return m.matcher.Match(b) })
}

func (m *cachedMatcher) MatchString(s string) bool {
	return m.lookup(s, func() bool { return m.matcher.MatchString(s) })
}

func (m *cachedMatcher) lookup(key string, match func() bool) bool {
	m.mu.RLock()
	v, ok := m.cache[key]
	m.mu.RUnlock()
	if ok {
		return v
	}

	v = match()

	m.mu.Lock()
	if len(m.cache) >= m.size {
		clear(m.cache)
	}
	m.cache[key] = v
	m.mu.Unlock()

	return v
}
