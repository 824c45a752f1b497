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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlloc_ZeroAndNegativeReturnNil(t *testing.T) {
	a := New(4096)
	assert.Nil(t, a.Alloc(0))
	assert.Nil(t, a.Alloc(-1))
}

func TestAlloc_SizeOneSucceeds(t *testing.T) {
	a := New(4096)
	p := a.Alloc(1)
	require.NotNil(t, p)
	assert.Len(t, p, 1)
}

func TestAlloc_ExceedingArenaCapacityFails(t *testing.T) {
	a := New(4096)
	assert.Nil(t, a.Alloc(4096))
}

func TestAllocThenFree_ReturnsToSingleTopBlock(t *testing.T) {
	a := New(4096)
	p := a.Alloc(37)
	require.NotNil(t, p)
	a.Free(p)

	require.NoError(t, a.CheckInvariants())
	top := MaxOrder - 1
	require.NotNil(t, a.freeHeads[top])
	assert.Nil(t, a.freeHeads[top].next, "freeing the only live block must merge back to a single top-order block")
	for order := 0; order < top; order++ {
		assert.Nil(t, a.freeHeads[order], "order %d should be empty once everything has merged back up", order)
	}
}

func TestEagerMergeOnFree_PowerOfTwoWriteReadCycle(t *testing.T) {
	a := New(4096)
	p := a.Alloc(256)
	require.NotNil(t, p)
	copy(p, "Buddy blocks are power-of-two sized!")
	assert.Equal(t, byte('B'), p[0])

	a.Free(p)
	require.NoError(t, a.CheckInvariants())
}

func TestFreeIsSafeOnBogusPointer(t *testing.T) {
	a := New(4096)
	p := a.Alloc(64)
	require.NotNil(t, p)

	assert.NotPanics(t, func() { a.Free(p[2:]) })
	require.NoError(t, a.CheckInvariants())

	a.Free(p)
	assert.NotPanics(t, func() { a.Free(p) })
}

func TestFreeOfNilIsNoOp(t *testing.T) {
	a := New(4096)
	assert.NotPanics(t, func() { a.Free(nil) })
}

func TestSplitThenMergeRestoresSiblingsAsBuddies(t *testing.T) {
	a := New(4096)
	x := a.Alloc(900)
	require.NotNil(t, x)
	y := a.Alloc(900)
	require.NotNil(t, y)

	require.NoError(t, a.CheckInvariants())
	a.Free(x)
	a.Free(y)
	require.NoError(t, a.CheckInvariants())

	top := MaxOrder - 1
	require.NotNil(t, a.freeHeads[top])
	assert.Nil(t, a.freeHeads[top].next)
}

func TestOrderForRounding(t *testing.T) {
	assert.Equal(t, 0, orderFor(1))
	assert.Equal(t, 1, orderFor(2))
	assert.Equal(t, 7, orderFor(100))
	assert.Equal(t, MaxOrder, orderFor(1<<uint(MaxOrder)))
}

func TestContainsReportsOwnershipCorrectly(t *testing.T) {
	a := New(4096)
	p := a.Alloc(64)
	require.NotNil(t, p)
	assert.True(t, a.Contains(p))

	other := New(4096)
	q := other.Alloc(64)
	require.NotNil(t, q)
	assert.False(t, a.Contains(q))
	assert.False(t, a.Contains(nil))
}
