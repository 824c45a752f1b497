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

package nanoheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeapWithConfig_RejectsBadConfig(t *testing.T) {
	_, err := NewHeapWithConfig(Config{MainArenaSize: 0, BuddyArenaSize: 4096})
	assert.Error(t, err)

	_, err = NewHeapWithConfig(Config{MainArenaSize: 4096, BuddyArenaSize: 100})
	assert.Error(t, err, "buddy arena size must be a power of two")

	_, err = NewHeapWithConfig(DefaultConfig())
	assert.NoError(t, err)
}

func TestCurrentStrategy_DefaultsToFirstAndTracksCalls(t *testing.T) {
	h := NewHeap()
	assert.Equal(t, StrategyFirst, h.CurrentStrategy())

	h.AllocBestFit(16)
	assert.Equal(t, StrategyBest, h.CurrentStrategy())

	h.AllocWorstFit(16)
	assert.Equal(t, StrategyWorst, h.CurrentStrategy())
}

func TestStrategyTagUpdatesEvenOnFailedAllocation(t *testing.T) {
	h := NewHeap()
	got := h.AllocBuddy(1 << 20)
	assert.Nil(t, got)
	assert.Equal(t, StrategyBuddy, h.CurrentStrategy(), "the strategy tag records the attempted strategy, not just successful ones")
}

func TestFreeDispatchesToTheOwningArena(t *testing.T) {
	h := NewHeap()
	main := h.AllocFirstFit(64)
	require.NotNil(t, main)
	buddy := h.AllocBuddy(64)
	require.NotNil(t, buddy)

	h.Free(buddy)
	h.Free(main)

	again := h.AllocFirstFit(64)
	assert.NotNil(t, again)
}

func TestFreeOfBogusPointerIsNoOp(t *testing.T) {
	h := NewHeap()
	assert.NotPanics(t, func() { h.Free(nil) })
	assert.NotPanics(t, func() { h.Free(make([]byte, 8)) })
}

func TestPackageLevelFreeFunctionsUseDefaultHeap(t *testing.T) {
	p := AllocFirstFit(32)
	require.NotNil(t, p)
	assert.Equal(t, StrategyFirst, CurrentStrategy())
	Free(p)
}

func TestStrategyString(t *testing.T) {
	cases := map[Strategy]string{
		StrategyFirst: "first-fit",
		StrategyNext:  "next-fit",
		StrategyBest:  "best-fit",
		StrategyWorst: "worst-fit",
		StrategyBuddy: "buddy",
		Strategy(0):   "unknown",
		Strategy(99):  "unknown",
	}
	for s, want := range cases {
		assert.Equal(t, want, s.String())
	}
}
