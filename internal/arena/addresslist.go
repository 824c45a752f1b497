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

// insertAt links n between prev and next, fixing up the head pointer if
// prev is nil.
func (a *Arena) insertAt(prev, next, n *blockHeader) {
	n.addrPrev = prev
	n.addrNext = next
	if prev != nil {
		prev.addrNext = n
	} else {
		a.head = n
	}
	if next != nil {
		next.addrPrev = n
	}
}

// unlinkAddr removes n from the address list, preserving the order of its
// neighbors.
func (a *Arena) unlinkAddr(n *blockHeader) {
	if n.addrPrev != nil {
		n.addrPrev.addrNext = n.addrNext
	} else {
		a.head = n.addrNext
	}
	if n.addrNext != nil {
		n.addrNext.addrPrev = n.addrPrev
	}
	n.addrPrev = nil
	n.addrNext = nil
}
