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

package buddy

import (
	"unsafe"

	"github.com/nanoheap/nanoheap/internal/hostmem"
)

// Arena is one buddy-arena instance. Storage is lazily acquired on first
// Alloc call and persists for the Arena's lifetime.
type Arena struct {
	size int

	mem   []byte
	start uintptr
	end   uintptr

	freeHeads [MaxOrder]*buddyHeader

	bootstrapped bool
}

// New returns an Arena that will lazily acquire size bytes of backing
// storage on first use. The arena always manages a single top block of
// 2^(MaxOrder-1) = 4096 bytes, so size must be at least that; bytes beyond
// it are never used. The spec's default is H = 4096.
func New(size int) *Arena {
	return &Arena{size: size}
}

func (a *Arena) ensureBootstrapped() {
	if a.bootstrapped {
		return
	}
	a.mem = hostmem.Acquire(a.size)
	a.start = uintptr(unsafe.Pointer(&a.mem[0]))
	a.end = a.start + uintptr(len(a.mem))

	top := MaxOrder - 1
	b := headerAt(a.start)
	*b = buddyHeader{
		size:   uint32(1) << uint(top),
		order:  uint8(top),
		magic:  magicFree,
		isFree: true,
	}
	a.freeHeads[top] = b
	a.bootstrapped = true
}

func (a *Arena) push(order int, n *buddyHeader) {
	n.next = a.freeHeads[order]
	n.prev = nil
	if a.freeHeads[order] != nil {
		a.freeHeads[order].prev = n
	}
	a.freeHeads[order] = n
}

func (a *Arena) pop(order int) *buddyHeader {
	h := a.freeHeads[order]
	if h == nil {
		return nil
	}
	a.freeHeads[order] = h.next
	if h.next != nil {
		h.next.prev = nil
	}
	h.next, h.prev = nil, nil
	return h
}

func (a *Arena) unlink(order int, n *buddyHeader) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		a.freeHeads[order] = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	n.prev, n.next = nil, nil
}

// orderFor returns the smallest order k with 2^k >= need, or MaxOrder if
// no such order exists within this arena.
func orderFor(need uintptr) int {
	order := 0
	for uintptr(1)<<uint(order) < need {
		order++
		if order >= MaxOrder {
			return MaxOrder
		}
	}
	return order
}

// Alloc allocates n bytes from the buddy arena, splitting a larger free
// block as needed, and returns nil if n is zero or the rounded request
// exceeds the largest order this arena supports.
func (a *Arena) Alloc(n int) []byte {
	a.ensureBootstrapped()
	if n <= 0 {
		return nil
	}
	order := orderFor(uintptr(n) + HeaderSize)
	if order >= MaxOrder {
		return nil
	}

	j := order
	for j < MaxOrder && a.freeHeads[j] == nil {
		j++
	}
	if j >= MaxOrder {
		return nil
	}
	b := a.pop(j)

	for j > order {
		j--
		half := uint32(1) << uint(j)
		right := headerAt(addrOf(b) + uintptr(half))
		*right = buddyHeader{size: half, order: uint8(j), magic: magicFree, isFree: true}
		b.size = half
		b.order = uint8(j)
		a.push(j, right)
	}

	b.isFree = false
	b.magic = magicAlloc
	return payloadOf(b, n)
}

// Contains reports whether p's backing address falls within this arena's
// byte range.
func (a *Arena) Contains(p []byte) bool {
	if !a.bootstrapped || len(p) == 0 {
		return false
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(p)))
	return addr >= a.start && addr < a.end
}

// Free returns p to the arena and eagerly merges with its buddy, and its
// buddy's buddy, for as long as a free buddy of matching order exists.
// Invalid pointers (out of range, or header not carrying the allocated
// magic) are silently ignored.
func (a *Arena) Free(p []byte) {
	if len(p) == 0 {
		return
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(p))) - HeaderSize
	if addr < a.start || addr+HeaderSize > a.end {
		return
	}
	b := headerAt(addr)
	if b.magic != magicAlloc {
		return
	}

	b.isFree = true
	b.magic = magicFree
	a.push(int(b.order), b)

	for int(b.order) < MaxOrder-1 {
		offset := addrOf(b) - a.start
		buddyOffset := offset ^ (uintptr(1) << uint(b.order))
		bud := headerAt(a.start + buddyOffset)
		if !bud.isFree || bud.magic != magicFree || bud.order != b.order {
			break
		}
		a.unlink(int(b.order), bud)
		a.unlink(int(b.order), b)
		if addrOf(bud) < addrOf(b) {
			b = bud
		}
		b.order++
		b.size <<= 1
		a.push(int(b.order), b)
	}
	debugCheck(a)
}
