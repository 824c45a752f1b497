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

package arena

import (
	"unsafe"

	"github.com/nanoheap/nanoheap/internal/hostmem"
)

// Arena is one main-arena instance: address list, skip-list size index,
// next-fit rover and the four non-buddy placement strategies. Construct it
// with New or NewWithTailThreshold; the zero value has no size and is not
// usable. Storage is lazily acquired on first Alloc* call, per spec, and
// persists for the Arena's lifetime — there is no Close.
type Arena struct {
	size          int
	tailThreshold int

	mem   []byte
	start uintptr
	end   uintptr

	head      *blockHeader
	sizeHeads [MaxSkipListLevel]*blockHeader
	rover     *blockHeader

	rngState uint32

	bootstrapped bool
}

// New returns an Arena that will lazily acquire size bytes of backing
// storage on first use. size must be large enough to hold at least one
// header; callers needing the spec's default should pass H = 4096.
func New(size int) *Arena {
	return &Arena{size: size, tailThreshold: MinTail}
}

// NewWithTailThreshold is New but with an explicit split-tail threshold in
// place of the spec default MinTail.
func NewWithTailThreshold(size, tailThreshold int) *Arena {
	return &Arena{size: size, tailThreshold: tailThreshold}
}

func (a *Arena) ensureBootstrapped() {
	if a.bootstrapped {
		return
	}
	a.mem = hostmem.Acquire(a.size)
	a.start = uintptr(unsafe.Pointer(&a.mem[0]))
	a.end = a.start + uintptr(len(a.mem))

	b := headerAt(a.start)
	*b = blockHeader{
		size:   uint32(a.size) - uint32(HeaderSize),
		magic:  magicFree,
		isFree: true,
		level:  1,
	}
	a.head = b
	a.rover = b
	a.rngState = prngSeed
	a.sizeIndexInsert(b)

	a.bootstrapped = true
}

// split carves a remainder out of b when the leftover payload would be at
// least HeaderSize+tailThreshold bytes; otherwise b is left untouched and
// the whole block is handed to the caller.
func (a *Arena) split(b *blockHeader, need int) *blockHeader {
	total := HeaderSize + uintptr(b.size)
	needed := HeaderSize + uintptr(need)
	if total < needed+HeaderSize+uintptr(a.tailThreshold) {
		return nil
	}
	rem := headerAt(addrOf(b) + needed)
	*rem = blockHeader{
		size:   uint32(total - needed - HeaderSize),
		magic:  magicFree,
		isFree: true,
		level:  1,
	}
	b.size = uint32(need)
	return rem
}

// coalesce merges b with an address-adjacent free neighbor on either side,
// reinserts the survivor into the size index, and retargets the rover if it
// pointed at a block that was just consumed by the merge. It returns the
// (possibly different) surviving header.
func (a *Arena) coalesce(b *blockHeader) *blockHeader {
	prev, next := b.addrPrev, b.addrNext
	mergePrev := prev != nil && adjacent(prev, b)
	mergeNext := next != nil && adjacent(b, next)
	if !mergePrev && !mergeNext {
		if a.head == nil {
			a.rover = nil
		}
		return b
	}

	if mergePrev {
		a.sizeIndexRemove(prev)
	}
	a.sizeIndexRemove(b)
	if mergeNext {
		a.sizeIndexRemove(next)
	}

	if mergePrev {
		prev.addrNext = b.addrNext
		if b.addrNext != nil {
			b.addrNext.addrPrev = prev
		}
		prev.size += uint32(HeaderSize) + b.size
		if a.rover == b || a.rover == prev {
			a.rover = prev
		}
		b = prev
	}
	if mergeNext {
		nn := next.addrNext
		b.addrNext = nn
		if nn != nil {
			nn.addrPrev = b
		}
		b.size += uint32(HeaderSize) + next.size
		if a.rover == next || a.rover == b {
			a.rover = b
		}
	}
	a.sizeIndexInsert(b)
	if a.head == nil {
		a.rover = nil
	}
	return b
}

// placeCandidate is the shared "allocate from a chosen free block" path
// behind all four main-arena strategies: unlink cand, split it, relink any
// remainder, let the caller (which differs only here, per strategy)
// fix up the rover, then stamp cand allocated and hand back its payload.
func (a *Arena) placeCandidate(cand *blockHeader, need int, afterSplit func(prev, rem, next *blockHeader)) []byte {
	prev, next := cand.addrPrev, cand.addrNext
	a.unlinkAddr(cand)
	a.sizeIndexRemove(cand)

	rem := a.split(cand, need)
	if rem != nil {
		a.insertAt(prev, next, rem)
		a.sizeIndexInsert(rem)
	}
	if afterSplit != nil {
		afterSplit(prev, rem, next)
	}

	cand.isFree = false
	cand.magic = magicAlloc
	return payloadOf(cand)
}

// AllocFirstFit walks the address list from head and takes the first block
// large enough to serve n bytes.
func (a *Arena) AllocFirstFit(n int) []byte {
	a.ensureBootstrapped()
	if n <= 0 {
		return nil
	}
	for cur := a.head; cur != nil; cur = cur.addrNext {
		if int(cur.size) >= n {
			return a.placeCandidate(cur, n, func(_, rem, next *blockHeader) {
				switch {
				case rem != nil:
					a.rover = rem
				case next != nil:
					a.rover = next
				default:
					a.rover = a.head
				}
			})
		}
	}
	return nil
}

// AllocNextFit resumes from the rover (or head, if unset) and walks the
// address list circularly, taking the first block large enough.
func (a *Arena) AllocNextFit(n int) []byte {
	a.ensureBootstrapped()
	if n <= 0 {
		return nil
	}
	if a.head == nil {
		a.rover = nil
		return nil
	}
	if a.rover == nil {
		a.rover = a.head
	}
	start := a.rover
	for cur := start; ; {
		if int(cur.size) >= n {
			return a.placeCandidate(cur, n, func(_, rem, next *blockHeader) {
				switch {
				case rem != nil:
					a.rover = rem
				case a.head == nil:
					a.rover = nil
				case next != nil:
					a.rover = next
				default:
					a.rover = a.head
				}
			})
		}
		if cur.addrNext != nil {
			cur = cur.addrNext
		} else {
			cur = a.head
		}
		if cur == nil || cur == start {
			break
		}
	}
	return nil
}

// AllocBestFit takes the smallest free block that still fits n bytes.
// Unlike first/next-fit it never touches the rover.
func (a *Arena) AllocBestFit(n int) []byte {
	a.ensureBootstrapped()
	if n <= 0 {
		return nil
	}
	cand := a.sizeIndexFirstGE(n)
	if cand == nil {
		return nil
	}
	return a.placeCandidate(cand, n, nil)
}

// AllocWorstFit takes the largest free block, failing if even that one is
// too small. It never touches the rover.
func (a *Arena) AllocWorstFit(n int) []byte {
	a.ensureBootstrapped()
	if n <= 0 {
		return nil
	}
	cand := a.sizeIndexMax()
	if cand == nil || int(cand.size) < n {
		return nil
	}
	return a.placeCandidate(cand, n, nil)
}

// Contains reports whether p's backing address falls within this arena's
// byte range. Used by the caller to decide whether a handle belongs to the
// main arena before calling Free.
func (a *Arena) Contains(p []byte) bool {
	if !a.bootstrapped || len(p) == 0 {
		return false
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(p)))
	return addr >= a.start && addr < a.end
}

// Free returns p to the arena. It silently ignores nil, pointers outside
// the arena, and pointers whose header doesn't carry the allocated magic
// (bogus pointers and double-frees alike) — per spec, misuse is never
// reported.
func (a *Arena) Free(p []byte) {
	if len(p) == 0 {
		return
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(p))) - HeaderSize
	if addr < a.start || addr+HeaderSize > a.end {
		return
	}
	hdr := headerAt(addr)
	if hdr.magic != magicAlloc {
		return
	}

	var prev, next *blockHeader
	next = a.head
	for next != nil && addrOf(next) < addr {
		prev = next
		next = next.addrNext
	}
	a.insertAt(prev, next, hdr)

	hdr.isFree = true
	hdr.magic = magicFree
	for i := range hdr.skipForward {
		hdr.skipForward[i] = nil
	}
	hdr.level = 1
	a.sizeIndexInsert(hdr)

	a.coalesce(hdr)
	debugCheck(a)
}
