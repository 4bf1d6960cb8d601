// Package bloom remembers links compactly using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/ficbot"
)

// Sizing used for the set of links the metadata service does not know.
const (
	DefaultCapacity = 100_000
	DefaultFPRate   = 0.0001
)

// Ensure Filter implements ficbot.LinkFilter at compile time.
var _ ficbot.LinkFilter = (*Filter)(nil)

// Filter is a Bloom filter of links, safe for concurrent use.
type Filter struct {
	mu sync.RWMutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected links
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a link to the filter.
func (f *Filter) Add(link string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(link)
}

// Test returns true if the link might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(link string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(link)
}

// Reset forgets every link.
func (f *Filter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.ClearAll()
}

// EstimatedCount returns the approximate number of links in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint(f.f.ApproximatedSize())
}
