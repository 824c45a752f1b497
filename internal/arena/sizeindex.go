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

// sizeIndexInsert samples a fresh level for n and splices it into the
// skip list at every level below that height, keyed by (size, address).
func (a *Arena) sizeIndexInsert(n *blockHeader) {
	lvl := sampleLevel(&a.rngState)
	n.level = uint8(lvl)

	var update [MaxSkipListLevel]*blockHeader
	var cur *blockHeader
	for i := MaxSkipListLevel - 1; i >= 0; i-- {
		p := a.sizeHeads[i]
		if cur != nil {
			p = cur.skipForward[i]
		}
		for p != nil && cmpSizeAddr(p, n) < 0 {
			cur = p
			p = p.skipForward[i]
		}
		update[i] = cur
	}

	for i := 0; i < lvl; i++ {
		var p *blockHeader
		if update[i] != nil {
			p = update[i].skipForward[i]
		} else {
			p = a.sizeHeads[i]
		}
		n.skipForward[i] = p
		if update[i] != nil {
			update[i].skipForward[i] = n
		} else {
			a.sizeHeads[i] = n
		}
	}
	for i := lvl; i < MaxSkipListLevel; i++ {
		n.skipForward[i] = nil
	}
}

// sizeIndexRemove descends the skip list and unlinks n at every level it
// participates in. It is a no-op at levels where n isn't the successor
// found by descent (which should not happen for a well-formed index, but
// mirrors the defensive "only unlink if it matches" structure of the
// classic algorithm).
func (a *Arena) sizeIndexRemove(n *blockHeader) {
	var update [MaxSkipListLevel]*blockHeader
	var cur *blockHeader
	for i := MaxSkipListLevel - 1; i >= 0; i-- {
		p := a.sizeHeads[i]
		if cur != nil {
			p = cur.skipForward[i]
		}
		for p != nil && cmpSizeAddr(p, n) < 0 {
			cur = p
			p = p.skipForward[i]
		}
		update[i] = cur
	}
	for i := 0; i < MaxSkipListLevel; i++ {
		var next *blockHeader
		if update[i] != nil {
			next = update[i].skipForward[i]
		} else {
			next = a.sizeHeads[i]
		}
		if next == n {
			if update[i] != nil {
				update[i].skipForward[i] = n.skipForward[i]
			} else {
				a.sizeHeads[i] = n.skipForward[i]
			}
		}
	}
}

// sizeIndexFirstGE returns the smallest free block with size >= need, or
// nil if none qualifies.
func (a *Arena) sizeIndexFirstGE(need int) *blockHeader {
	var cur *blockHeader
	for i := MaxSkipListLevel - 1; i >= 0; i-- {
		p := a.sizeHeads[i]
		if cur != nil {
			p = cur.skipForward[i]
		}
		for p != nil && int(p.size) < need {
			cur = p
			p = p.skipForward[i]
		}
	}
	if cur != nil {
		return cur.skipForward[0]
	}
	return a.sizeHeads[0]
}

// sizeIndexMax returns the largest free block, or nil if the index is empty.
func (a *Arena) sizeIndexMax() *blockHeader {
	var cur *blockHeader
	for i := MaxSkipListLevel - 1; i >= 0; i-- {
		p := a.sizeHeads[i]
		if cur != nil {
			p = cur.skipForward[i]
		}
		for p != nil {
			cur = p
			p = p.skipForward[i]
		}
	}
	return cur
}
