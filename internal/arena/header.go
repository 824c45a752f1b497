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

// Package arena implements the main arena: an address-ordered free list for
// neighbor coalescing, a skip-list size index for logarithmic best/worst
// fit, a next-fit rover, and the split policy tying them together. A
// blockHeader lives directly inside the arena's backing bytes at the
// block's address — not as a separate Go heap allocation — so that address
// arithmetic (adjacency tests, "header address + size") is meaningful the
// same way it is in a systems-language allocator.
package arena

import "unsafe"

const (
	// MaxSkipListLevel bounds the height of any size-index node. It is a
	// compile-time constant because blockHeader.skipForward is a fixed-size
	// array: the header layout, not a runtime setting, is what fixes it.
	MaxSkipListLevel = 6

	// MinTail is the minimum payload size (in bytes) a split remainder must
	// have to be kept as its own free block; smaller remainders are folded
	// back into the block handed to the caller.
	MinTail = 32

	magicFree  uint32 = 0xFEEDFACE
	magicAlloc uint32 = 0xDEADBEEF

	// prngSeed is the fixed xorshift32 seed every Arena boots from, so that
	// a given operation sequence produces byte-identical skip-list shapes
	// (and therefore byte-identical payload addresses) across runs.
	prngSeed uint32 = 0x9E3779B9
)

// blockHeader is the free-block header. It is reused, unmodified in shape,
// for allocated blocks too (size/magic/isFree simply reflect the block's
// current state; the address-list and skip-list pointers of an allocated
// block are left dangling/unused).
type blockHeader struct {
	size       uint32
	addrPrev   *blockHeader
	addrNext   *blockHeader
	skipForward [MaxSkipListLevel]*blockHeader
	level      uint8
	magic      uint32
	isFree     bool
}

// HeaderSize is the fixed per-block bookkeeping overhead of this arena.
var HeaderSize = uintptr(unsafe.Sizeof(blockHeader{}))

func addrOf(h *blockHeader) uintptr {
	return uintptr(unsafe.Pointer(h))
}

func headerAt(addr uintptr) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(addr))
}

// adjacent reports whether y begins exactly where x's payload ends.
func adjacent(x, y *blockHeader) bool {
	return addrOf(x)+HeaderSize+uintptr(x.size) == addrOf(y)
}

// payloadOf returns the writable payload of an allocated or about-to-be
// allocated header as a slice backed by the arena's own memory.
func payloadOf(h *blockHeader) []byte {
	p := unsafe.Add(unsafe.Pointer(h), HeaderSize)
	return unsafe.Slice((*byte)(p), int(h.size))
}

// xorshift32 advances the PRNG state and returns the new value. Seeded
// deterministically, it is what makes skip-list shape (and hence which
// free block services a given request) reproducible across runs.
func xorshift32(state uint32) uint32 {
	x := state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	if x == 0 {
		// A zero state is absorbing for xorshift; never let it stick.
		x = 0xA5A5A5A5
	}
	return x
}

// sampleLevel draws a geometric(p=1/2) height in [1, MaxSkipListLevel].
func sampleLevel(state *uint32) int {
	h := 1
	for h < MaxSkipListLevel {
		*state = xorshift32(*state)
		if *state&1 == 0 {
			break
		}
		h++
	}
	return h
}

func cmpSizeAddr(a, b *blockHeader) int {
	if a.size < b.size {
		return -1
	}
	if a.size > b.size {
		return 1
	}
	aa, bb := addrOf(a), addrOf(b)
	switch {
	case aa < bb:
		return -1
	case aa > bb:
		return 1
	default:
		return 0
	}
}
