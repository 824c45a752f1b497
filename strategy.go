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

// Strategy identifies which placement strategy most recently served (or
// refused) an allocation request.
type Strategy uint8

// The fixed strategy enumeration. Zero is deliberately unused so that a
// zero-valued Strategy (e.g. one never set) is visibly distinct from
// StrategyFirst, even though CurrentStrategy defaults to StrategyFirst.
const (
	StrategyFirst Strategy = iota + 1
	StrategyNext
	StrategyBest
	StrategyWorst
	StrategyBuddy
)

// String returns the canonical lowercase name for s, or "unknown" for any
// value outside the fixed enumeration.
func (s Strategy) String() string {
	switch s {
	case StrategyFirst:
		return "first-fit"
	case StrategyNext:
		return "next-fit"
	case StrategyBest:
		return "best-fit"
	case StrategyWorst:
		return "worst-fit"
	case StrategyBuddy:
		return "buddy"
	default:
		return "unknown"
	}
}
