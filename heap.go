// Copyright 2026 The Nanoheap Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package nanoheap is a pedagogical user-space allocator: an address-ordered
// main arena offering first-fit, next-fit, best-fit and worst-fit placement
// over a single fixed-size byte region, plus an independent power-of-two
// buddy arena. Neither arena grows; both are backed by a single mmap'd (or,
// on unsupported platforms, Go-heap-backed) region acquired lazily on first
// use. The package is not safe for concurrent use by multiple goroutines
// without external synchronization — see the Non-goals in the design notes.
package nanoheap

import (
	"fmt"

	"github.com/nanoheap/nanoheap/internal/arena"
	"github.com/nanoheap/nanoheap/internal/buddy"
)

// Heap bundles the two independent arenas behind the five Alloc* entry
// points and tracks which strategy was used most recently.
type Heap struct {
	main     *arena.Arena
	buddy    *buddy.Arena
	strategy Strategy
}

// NewHeap returns a Heap configured with DefaultConfig. It never fails.
func NewHeap() *Heap {
	h, err := NewHeapWithConfig(DefaultConfig())
	if err != nil {
		// DefaultConfig is always valid; a failure here would mean
		// DefaultConfig and validate disagree with each other.
		panic(err)
	}
	return h
}

// NewHeapWithConfig returns a Heap configured per cfg, or an error if cfg is
// not self-consistent (non-positive sizes, a non-power-of-two buddy size or
// one below 4096, a negative split-tail threshold).
func NewHeapWithConfig(cfg Config) (*Heap, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("nanoheap: invalid config: %w", err)
	}
	return &Heap{
		main:     arena.NewWithTailThreshold(cfg.MainArenaSize, cfg.SplitTailThreshold),
		buddy:    buddy.New(cfg.BuddyArenaSize),
		strategy: StrategyFirst,
	}, nil
}

// CurrentStrategy returns the strategy used by the most recent Alloc* call
// on h, whether or not that call succeeded. A freshly constructed Heap
// reports StrategyFirst even though no allocation has happened yet.
func (h *Heap) CurrentStrategy() Strategy {
	return h.strategy
}

// AllocFirstFit allocates n bytes from the main arena using first-fit
// placement: the first free block, walking from the lowest address, that is
// large enough. Returns nil if n <= 0 or no block is large enough.
func (h *Heap) AllocFirstFit(n int) []byte {
	h.strategy = StrategyFirst
	return h.main.AllocFirstFit(n)
}

// AllocNextFit allocates n bytes from the main arena, resuming the search
// from wherever the previous next-fit allocation left off (the rover),
// wrapping around the address list once. Returns nil if n <= 0 or no block
// is large enough.
func (h *Heap) AllocNextFit(n int) []byte {
	h.strategy = StrategyNext
	return h.main.AllocNextFit(n)
}

// AllocBestFit allocates n bytes from the main arena, choosing the smallest
// free block that is still large enough. Returns nil if n <= 0 or no block
// is large enough.
func (h *Heap) AllocBestFit(n int) []byte {
	h.strategy = StrategyBest
	return h.main.AllocBestFit(n)
}

// AllocWorstFit allocates n bytes from the main arena, choosing the largest
// free block available. Returns nil if n <= 0 or even the largest block is
// too small.
func (h *Heap) AllocWorstFit(n int) []byte {
	h.strategy = StrategyWorst
	return h.main.AllocWorstFit(n)
}

// AllocBuddy allocates n bytes from the independent buddy arena, rounding up
// to the smallest serviceable power-of-two block. Returns nil if n <= 0 or
// the rounded request exceeds the buddy arena's capacity.
func (h *Heap) AllocBuddy(n int) []byte {
	h.strategy = StrategyBuddy
	return h.buddy.Alloc(n)
}

// Free returns p to whichever arena it was allocated from. It is a safe
// no-op for nil, for a pointer that doesn't belong to either arena, and for
// a pointer that has already been freed — per design, misuse is never
// reported back to the caller.
func (h *Heap) Free(p []byte) {
	switch {
	case h.main.Contains(p):
		h.main.Free(p)
	case h.buddy.Contains(p):
		h.buddy.Free(p)
	}
}

// defaultHeap backs the package-level free functions below, mirroring the
// single-instance-by-default convenience of a package that also lets
// advanced callers build their own Heap via NewHeapWithConfig.
var defaultHeap = NewHeap()

// AllocFirstFit allocates n bytes from the default Heap using first-fit
// placement. See Heap.AllocFirstFit.
func AllocFirstFit(n int) []byte { return defaultHeap.AllocFirstFit(n) }

// AllocNextFit allocates n bytes from the default Heap using next-fit
// placement. See Heap.AllocNextFit.
func AllocNextFit(n int) []byte { return defaultHeap.AllocNextFit(n) }

// AllocBestFit allocates n bytes from the default Heap using best-fit
// placement. See Heap.AllocBestFit.
func AllocBestFit(n int) []byte { return defaultHeap.AllocBestFit(n) }

// AllocWorstFit allocates n bytes from the default Heap using worst-fit
// placement. See Heap.AllocWorstFit.
func AllocWorstFit(n int) []byte { return defaultHeap.AllocWorstFit(n) }

// AllocBuddy allocates n bytes from the default Heap's buddy arena. See
// Heap.AllocBuddy.
func AllocBuddy(n int) []byte { return defaultHeap.AllocBuddy(n) }

// Free returns p to the default Heap. See Heap.Free.
func Free(p []byte) { defaultHeap.Free(p) }

// CurrentStrategy reports the strategy used by the default Heap's most
// recent Alloc* call. See Heap.CurrentStrategy.
func CurrentStrategy() Strategy { return defaultHeap.CurrentStrategy() }
