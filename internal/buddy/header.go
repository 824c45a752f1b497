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

// Package buddy implements the buddy arena: a power-of-two split/merge
// allocator with one free list per order, eager coalescing on every Free,
// and a buddy address computed by XORing the in-arena offset with the
// block's size.
package buddy

import "unsafe"

const (
	// MaxOrder bounds the orders a buddy arena supports: 0..MaxOrder-1.
	// With the spec's H = 4096-byte arena, the initial whole-arena block
	// is order MaxOrder-1 (2^12 == 4096 == H), matching the reference
	// allocator's MAXORD/HEAP_SIZE constants.
	MaxOrder = 13

	magicFree  uint32 = 0xB0D1F5EE
	magicAlloc uint32 = 0xB0D1A110
)

type buddyHeader struct {
	size   uint32
	prev   *buddyHeader
	next   *buddyHeader
	order  uint8
	magic  uint32
	isFree bool
}

// HeaderSize is the fixed per-block bookkeeping overhead of a buddy arena.
var HeaderSize = uintptr(unsafe.Sizeof(buddyHeader{}))

func addrOf(h *buddyHeader) uintptr {
	return uintptr(unsafe.Pointer(h))
}

func headerAt(addr uintptr) *buddyHeader {
	return (*buddyHeader)(unsafe.Pointer(addr))
}

func payloadOf(h *buddyHeader, n int) []byte {
	capacity := int(h.size) - int(HeaderSize)
	p := unsafe.Add(unsafe.Pointer(h), HeaderSize)
	return unsafe.Slice((*byte)(p), capacity)[:n]
}
