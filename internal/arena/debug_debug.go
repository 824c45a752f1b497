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

//go:build debug

package arena

import "log"

// debugCheck walks the invariants after every Free in a debug build and
// logs a diagnostic to stderr if one is violated. Production builds never
// call this (see debug_noop.go).
func debugCheck(a *Arena) {
	if err := a.CheckInvariants(); err != nil {
		log.Printf("[arena] invariant violated: %v", err)
	}
}
