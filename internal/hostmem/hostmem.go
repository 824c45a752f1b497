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

// Package hostmem obtains the raw, zero-initialized byte regions the arenas
// are built on top of. It models an anonymous private page mapping: a
// region with no backing file, visible to this process only, filled with
// zeros on first touch.
//
// Acquiring this region is the only host interaction in the whole module,
// and its failure is the only condition that is allowed to be fatal: an
// arena cannot exist without it, so there is nothing useful to fall back to.
package hostmem

import "log"

// Acquire returns a zero-initialized, contiguous byte region of exactly n
// bytes. It never returns a short or nil region on success.
//
// If the host refuses to provide the region, Acquire terminates the process
// immediately (log.Fatalf) rather than returning an error: every caller in
// this module assumes bootstrap cannot fail, and propagating a recoverable
// error here would just move the crash one frame up for no benefit.
func Acquire(n int) []byte {
	if n <= 0 {
		log.Fatalf("hostmem: invalid region size %d", n)
	}
	return acquire(n)
}
