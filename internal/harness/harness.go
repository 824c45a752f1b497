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

// Package harness provides scratch-buffer helpers for the demo program
// under cmd/. It has nothing to do with either nanoheap arena:
// the buffers it hands out are ordinary Go-heap-backed scratch space used
// to stage or compare against data that gets copied into arena payloads,
// so the two allocation worlds never get confused with each other.
package harness

import "github.com/bytedance/gopkg/lang/mcache"

// Scratch returns an n-byte scratch buffer pulled from a size-classed
// cache instead of a fresh make([]byte, n), the same way a long-running
// server avoids garbage from repeatedly-sized temporary buffers.
func Scratch(n int) []byte {
	return mcache.Malloc(n)
}

// Release returns a buffer obtained from Scratch to the cache. Callers
// must not use buf after calling Release.
func Release(buf []byte) {
	mcache.Free(buf)
}

// Fill writes a repeating byte pattern derived from seed into buf and
// returns buf, so demo/smoke code can stamp a recognizable pattern into a
// scratch buffer before copying it into an arena payload.
func Fill(buf []byte, seed byte) []byte {
	for i := range buf {
		buf[i] = seed + byte(i)
	}
	return buf
}
