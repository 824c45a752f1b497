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

// Command nanoheap-demo exercises each placement strategy in turn and
// prints a preview of what landed in the allocated payloads.
package main

import (
	"fmt"

	"github.com/nanoheap/nanoheap"
	"github.com/nanoheap/nanoheap/internal/harness"
)

type strategyCase struct {
	label string
	alloc func(int) []byte
}

func runStrategy(sc strategyCase) {
	fmt.Printf("=== %s ===\n", sc.label)

	a := sc.alloc(128)
	b := sc.alloc(64)
	if a == nil || b == nil {
		fmt.Println(" allocation failed")
		fmt.Println()
		nanoheap.Free(a)
		nanoheap.Free(b)
		return
	}

	sa := harness.Fill(harness.Scratch(127), 'A')
	sb := harness.Fill(harness.Scratch(63), 'b')
	copy(a, sa)
	copy(b, sb)
	harness.Release(sa)
	harness.Release(sb)

	fmt.Printf(" block A payload preview: %.16s...\n", a)
	fmt.Printf(" block B payload preview: %.16s...\n", b)
	fmt.Printf(" strategy recorded as: %s\n\n", nanoheap.CurrentStrategy())

	nanoheap.Free(a)
	nanoheap.Free(b)
}

func main() {
	cases := []strategyCase{
		{"first-fit", nanoheap.AllocFirstFit},
		{"next-fit", nanoheap.AllocNextFit},
		{"best-fit", nanoheap.AllocBestFit},
		{"worst-fit", nanoheap.AllocWorstFit},
	}

	for _, sc := range cases {
		runStrategy(sc)
	}

	fmt.Println("=== buddy allocator ===")
	buddy := nanoheap.AllocBuddy(256)
	if buddy == nil {
		fmt.Println(" buddy allocation failed")
		return
	}
	copy(buddy, "Buddy blocks are power-of-two sized!")
	fmt.Printf(" buddy block: %s\n", buddy)
	nanoheap.Free(buddy)
}
