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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocFirstFit_ZeroAndNegativeReturnNil(t *testing.T) {
	a := New(4096)
	assert.Nil(t, a.AllocFirstFit(0))
	assert.Nil(t, a.AllocFirstFit(-1))
}

func TestAllocFirstFit_ExactFitSucceeds(t *testing.T) {
	a := New(4096)
	want := 4096 - int(HeaderSize)
	got := a.AllocFirstFit(want)
	require.NotNil(t, got)
	assert.Len(t, got, want)
}

func TestAllocFirstFit_OneByteOverFails(t *testing.T) {
	a := New(4096)
	want := 4096 - int(HeaderSize) + 1
	assert.Nil(t, a.AllocFirstFit(want))
}

func TestAllocThenFree_ReturnsToBootstrapState(t *testing.T) {
	for _, strat := range []string{"first", "next", "best", "worst"} {
		t.Run(strat, func(t *testing.T) {
			a := New(4096)
			var p []byte
			switch strat {
			case "first":
				p = a.AllocFirstFit(64)
			case "next":
				p = a.AllocNextFit(64)
			case "best":
				p = a.AllocBestFit(64)
			case "worst":
				p = a.AllocWorstFit(64)
			}
			require.NotNil(t, p)
			a.Free(p)

			require.NoError(t, a.CheckInvariants())
			require.NotNil(t, a.head)
			assert.Nil(t, a.head.addrNext)
			assert.True(t, a.head.isFree)
			assert.Equal(t, uint32(4096)-uint32(HeaderSize), a.head.size)
		})
	}
}

func TestSplitSuppressedBelowTailThreshold(t *testing.T) {
	a := New(4096)
	whole := 4096 - int(HeaderSize)
	leaveTail := int(HeaderSize) + MinTail - 1
	need := whole - leaveTail

	got := a.AllocFirstFit(need)
	require.NotNil(t, got)
	// The tail was too small to keep as its own free block, so the whole
	// remainder went to the caller instead of being split off.
	assert.Equal(t, whole, len(got))
}

func TestSplitHappensAboveTailThreshold(t *testing.T) {
	a := New(4096)
	whole := 4096 - int(HeaderSize)
	leaveTail := int(HeaderSize) + MinTail + 16
	need := whole - leaveTail

	got := a.AllocFirstFit(need)
	require.NotNil(t, got)
	assert.Equal(t, need, len(got))
	require.NoError(t, a.CheckInvariants())
}

func TestBestFitChoosesSmallestAdequateBlock(t *testing.T) {
	a := New(4096)
	x := a.AllocFirstFit(512)
	require.NotNil(t, x)
	y := a.AllocFirstFit(512)
	require.NotNil(t, y)
	// y stays live, so the freed x and the large tail remain two separate
	// free blocks.
	a.Free(x)

	small := a.AllocBestFit(32)
	require.NotNil(t, small)
	assert.Equal(t, uintptr(unsafe.Pointer(unsafe.SliceData(x))), uintptr(unsafe.Pointer(unsafe.SliceData(small))), "best-fit must carve from the freed 512-byte block, not the larger tail")
	require.NoError(t, a.CheckInvariants())
}

func TestWorstFitChoosesLargestBlock(t *testing.T) {
	a := New(4096)
	front := a.AllocFirstFit(512)
	require.NotNil(t, front)
	guard := a.AllocFirstFit(64)
	require.NotNil(t, guard)
	// Free blocks are now the 512-byte block at the front and the much
	// larger tail behind guard; worst-fit must carve from the tail.
	a.Free(front)

	got := a.AllocWorstFit(16)
	require.NotNil(t, got)
	assert.Greater(t, uintptr(unsafe.Pointer(unsafe.SliceData(got))), uintptr(unsafe.Pointer(unsafe.SliceData(guard))))
	require.NoError(t, a.CheckInvariants())
}

func TestNextFitResumesFromRover(t *testing.T) {
	a := New(4096)
	first := a.AllocNextFit(64)
	require.NotNil(t, first)
	second := a.AllocNextFit(64)
	require.NotNil(t, second)

	// The rover now sits past both allocations, so after the first block is
	// freed a further next-fit call must continue from the rover instead of
	// reusing the freed block at the head.
	a.Free(first)
	third := a.AllocNextFit(64)
	require.NotNil(t, third)
	assert.Greater(t, uintptr(unsafe.Pointer(unsafe.SliceData(third))), uintptr(unsafe.Pointer(unsafe.SliceData(second))))
	require.NoError(t, a.CheckInvariants())
}

func TestFreeIsIdempotentAndSafeOnBogusPointer(t *testing.T) {
	a := New(4096)
	p := a.AllocFirstFit(64)
	require.NotNil(t, p)

	a.Free(p)
	require.NoError(t, a.CheckInvariants())
	assert.NotPanics(t, func() { a.Free(p) })

	bogus := p[2:]
	assert.NotPanics(t, func() { a.Free(bogus) })
	require.NoError(t, a.CheckInvariants())
}

func TestFreeOfNilIsNoOp(t *testing.T) {
	a := New(4096)
	assert.NotPanics(t, func() { a.Free(nil) })
}

func TestCoalesceMergesBothNeighbors(t *testing.T) {
	a := New(4096)
	x := a.AllocFirstFit(256)
	require.NotNil(t, x)
	y := a.AllocFirstFit(256)
	require.NotNil(t, y)
	z := a.AllocFirstFit(256)
	require.NotNil(t, z)

	a.Free(x)
	a.Free(z)
	a.Free(y)

	require.NoError(t, a.CheckInvariants())
	require.NotNil(t, a.head)
	assert.Nil(t, a.head.addrNext, "freeing all three neighbors must coalesce back into one block")
}

func TestDeterministicPlacementAcrossRuns(t *testing.T) {
	run := func() []int {
		a := New(4096)
		// Each arena has its own backing region, so placement is compared
		// as the payload's offset from the arena start, plus its length.
		offset := func(p []byte) int {
			return int(uintptr(unsafe.Pointer(unsafe.SliceData(p))) - a.start)
		}
		sizes := []int{64, 128, 32, 256, 16}
		var got []int
		var ptrs [][]byte
		for _, s := range sizes {
			p := a.AllocBestFit(s)
			ptrs = append(ptrs, p)
			if p != nil {
				got = append(got, offset(p), len(p))
			}
		}
		a.Free(ptrs[1])
		a.Free(ptrs[3])
		more := a.AllocBestFit(100)
		if more != nil {
			got = append(got, offset(more), len(more))
		}
		return got
	}

	assert.Equal(t, run(), run())
}

func TestContainsReportsOwnershipCorrectly(t *testing.T) {
	a := New(4096)
	p := a.AllocFirstFit(64)
	require.NotNil(t, p)
	assert.True(t, a.Contains(p))

	other := New(4096)
	q := other.AllocFirstFit(64)
	require.NotNil(t, q)
	assert.False(t, a.Contains(q))
	assert.False(t, a.Contains(nil))
}
