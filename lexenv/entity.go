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

// Element is an opaque handle to a client AST node. The engine never
// dereferences or frees an Element; it only compares it for equality and
// passes it back to host-supplied callbacks (CanReach, resolvers).
//
// Implementations must be comparable with ==, since internal map entries
// are matched by Element identity (Remove) and Get compares From against
// NoElement.
type Element any

// NoElement is the sentinel standing in for "no element", used as the
// default value of From in Get (no reachability filtering).
var NoElement Element = nil

// EntityInfo is the (metadata, rebindings) pair attached to an Entity, and
// also the payload RebindEnv's entity-info overload consults.
type EntityInfo struct {
	Metadata   Metadata
	Rebindings *Rebindings
}

// NoEntityInfo is the identity EntityInfo: empty metadata, no rebindings.
var NoEntityInfo = EntityInfo{}

// IsIdentity reports whether info carries no metadata and no rebindings.
func (info EntityInfo) IsIdentity() bool {
	return info.Metadata == nil && info.Rebindings == nil
}

// Entity is element + metadata + rebindings: the observable result of a
// lookup. The caller owns the Rebindings share embedded in Info and must
// call Release when done with the Entity (or with the slice Get returned).
type Entity struct {
	Element Element
	Info    EntityInfo
}

// Release drops this entity's share of its rebindings chain. Call it at
// most once per Entity: a second call drops a share the entity no longer
// holds, and like the rest of the engine, double-release is a caller bug.
func (e Entity) Release() {
	e.Info.Rebindings.decRef()
}

// ReleaseEntities releases every entity's rebindings share. Callers that
// used Get's result and are done with it should call this once.
func ReleaseEntities(entities []Entity) {
	for _, e := range entities {
		e.Release()
	}
}

// CanReachFunc is the host-defined reachability predicate used to filter lookup
// results to what is visible from a given point of use. The engine treats
// it as opaque, with one required property: CanReach(x, NoElement) must
// behave as if always true — equivalently, a caller passes from = NoElement
// to disable filtering altogether rather than relying on this property
// holding for a particular x.
type CanReachFunc func(from, to Element) bool
