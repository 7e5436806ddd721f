// Package cache provides an in-memory translation memo. Locale files
// commonly repeat the same string under many keys; the memo ensures each
// distinct text is sent to the provider once per run. State is never
// persisted across invocations.
package cache

import (
	"sync"
	"sync/atomic"
)

// Memo maps source text to its translation for the duration of one run.
type Memo struct {
	mu     sync.RWMutex
	memo   map[string]string
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemo creates an empty memo.
func NewMemo() *Memo {
	return &Memo{memo: make(map[string]string)}
}

// Get returns the memoized translation for text.
func (m *Memo) Get(text string) (string, bool) {
	m.mu.RLock()
	v, ok := m.memo[text]
	m.mu.RUnlock()
	if ok {
		m.hits.Add(1)
		return v, true
	}
	m.misses.Add(1)
	return "", false
}

// Set records a translation.
func (m *Memo) Set(text, translated string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memo[text] = translated
}

// Size returns the number of memoized entries.
func (m *Memo) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.memo)
}

// Stats returns hit and miss counts.
func (m *Memo) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}
