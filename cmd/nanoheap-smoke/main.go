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

// Command nanoheap-smoke runs a scripted allocate/fill/verify/free cycle
// against every strategy and exits non-zero on the first failure, the way a
// release-gate smoke test would.
package main

import (
	"fmt"
	"os"

	"github.com/nanoheap/nanoheap"
)

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "FAIL: "+format+"\n", args...)
	os.Exit(1)
}

func smokeAlloc(label string, alloc func(int) []byte) {
	const n = 8
	buf := alloc(n * 4)
	if buf == nil {
		fail("%s: allocation returned nil", label)
	}
	for i := 0; i < n; i++ {
		buf[i] = byte(i * 17)
	}
	for i := 0; i < n; i++ {
		if buf[i] != byte(i*17) {
			fail("%s: payload corrupted at index %d", label, i)
		}
	}
	nanoheap.Free(buf)
	fmt.Printf("ok  %s allocator handled allocate/free cycle\n", label)
}

func main() {
	smokeAlloc("first-fit", nanoheap.AllocFirstFit)
	smokeAlloc("next-fit", nanoheap.AllocNextFit)
	smokeAlloc("best-fit", nanoheap.AllocBestFit)
	smokeAlloc("worst-fit", nanoheap.AllocWorstFit)

	buddy := nanoheap.AllocBuddy(512)
	if buddy == nil {
		fail("buddy: allocation returned nil")
	}
	copy(buddy, "buddy-ok")
	if string(buddy[:len("buddy-ok")]) != "buddy-ok" {
		fail("buddy: payload mismatch")
	}
	nanoheap.Free(buddy)
	fmt.Println("ok  buddy allocator handled allocate/free cycle")

	// A bogus pointer two bytes past a live handle must be a safe no-op,
	// not a crash.
	live := nanoheap.AllocFirstFit(16)
	if live == nil {
		fail("first-fit: allocation returned nil for bogus-pointer check")
	}
	bogus := live[2:]
	nanoheap.Free(bogus)
	nanoheap.Free(live)

	fmt.Println("All allocator smoke tests passed.")
}
