package benchplot

import "sync"

// StringPool interns the values of String fields. A String field stores
// the pool index of its values in Field.Data, so tables derived from one
// another must share their pool.
type StringPool struct {
	mu    sync.RWMutex
	pool  []string
	index map[string]int
}

func NewStringPool() *StringPool {
	return &StringPool{
		pool:  make([]string, 0, 32),
		index: make(map[string]int),
	}
}

// Add interns s and returns its index.
func (sp *StringPool) Add(s string) int {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if i, ok := sp.index[s]; ok {
		return i
	}
	sp.pool = append(sp.pool, s)
	sp.index[s] = len(sp.pool) - 1
	return len(sp.pool) - 1
}

// Find returns the index of s or -1 if s was never added.
func (sp *StringPool) Find(s string) int {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	if i, ok := sp.index[s]; ok {
		return i
	}
	return -1
}

func (sp *StringPool) Get(i int) string {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	if i < 0 || i >= len(sp.pool) {
		return "--NA--"
	}
	return sp.pool[i]
}

func (sp *StringPool) Len() int {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	return len(sp.pool)
}
