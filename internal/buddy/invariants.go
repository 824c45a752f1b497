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

import "fmt"

// CheckInvariants verifies that every free list at order k holds only
// free blocks of size 2^k, and that no order below MaxOrder-1 has two
// free buddies of the same order sitting simultaneously in its list.
func (a *Arena) CheckInvariants() error {
	if !a.bootstrapped {
		return nil
	}

	for order := 0; order < MaxOrder; order++ {
		want := uint32(1) << uint(order)
		seen := make(map[uintptr]bool)
		for cur := a.freeHeads[order]; cur != nil; cur = cur.next {
			if cur.size != want {
				return fmt.Errorf("order %d free list holds a block of size %d", order, cur.size)
			}
			if cur.order != uint8(order) {
				return fmt.Errorf("order %d free list holds a block tagged order %d", order, cur.order)
			}
			if !cur.isFree || cur.magic != magicFree {
				return fmt.Errorf("order %d free list holds a non-free block", order)
			}
			seen[addrOf(cur)] = true
		}
		if order < MaxOrder-1 {
			for addr := range seen {
				buddyOffset := (addr - a.start) ^ (uintptr(1) << uint(order))
				if seen[a.start+buddyOffset] {
					return fmt.Errorf("order %d has two free buddies at offset %#x", order, addr-a.start)
				}
			}
		}
	}
	return nil
}
