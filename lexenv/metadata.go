// Copyright 2026 The Langkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lexenv

// Metadata is a small, value-typed decoration attached to entries and to
// environments. Hosts combine two Metadata values with Combine, which must
// be associative and must treat EmptyMetadata as an identity element:
// Combine(EmptyMetadata, x) == x for all x.
//
// The zero value of any host Metadata implementation is expected to behave
// as EmptyMetadata; the engine never constructs a Metadata value itself, it
// only copies and combines values the host supplies.
type Metadata interface {
	// Combine merges the receiver with other, in that order, and returns
	// the result. Implementations must make Combine associative.
	Combine(other Metadata) Metadata
}

// NoMetadata is the trivial Metadata implementation: an identity element
// that combines to whichever operand is non-nil. Hosts that don't need
// per-entry decoration can use NoMetadata{} everywhere.
type NoMetadata struct{}

// Combine implements Metadata.
func (NoMetadata) Combine(other Metadata) Metadata {
	if other == nil {
		return NoMetadata{}
	}
	return other
}

// combineMetadata applies Combine while tolerating either operand being
// nil, which stands in for EmptyMetadata for hosts that don't want to
// allocate a sentinel value.
func combineMetadata(a, b Metadata) Metadata {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return a.Combine(b)
	}
}
