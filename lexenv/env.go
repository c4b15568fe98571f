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

import (
	"github.com/setton/langkit/symtab"
)

// noRefcount is the ref_count sentinel marking a primary env: owned by its
// analysis unit rather than by reference count, and the owner of its
// ownMap. Encoding the two ownership regimes as one int field with a
// reserved value (rather than two separate types) keeps Destroy's dispatch
// a single field test, matching how the rest of the engine treats an env's
// regime as a property, not a type.
const noRefcount = -1

// internalMapElement is a raw entry stored in an env's own map: an
// (element, metadata, optional resolver) triple. Entries are created by Add
// and destroyed with the env or by Remove.
type internalMapElement struct {
	element  Element
	metadata Metadata
	resolver EntityResolver
}

// EntityResolver is an optional per-entry hook. When set on an entry, Get
// invokes it on the preliminary Entity built from that entry, and the
// resolver's return value replaces the entity outright — the resolver is
// responsible for any further rebinding bookkeeping on what it returns.
type EntityResolver func(Entity) (Entity, error)

// referencedEnv is a filtered reference: a (from_node, resolver) pair
// consulted only when the caller's From element can reach from_node. It is
// never refcount-owned by the holding env.
type referencedEnv struct {
	fromNode Element
	resolver LexicalEnvResolver
}

// ReferenceArgs is passed to a LexicalEnvResolver: the node the reference
// was declared from, and an EntityInfo. Get always passes NoEntityInfo
// when it resolves a filtered reference.
type ReferenceArgs struct {
	FromNode Element
	Info     EntityInfo
}

// LexicalEnvResolver resolves a Referenced_Env lazily during lookup. It
// must return a fresh owned *LexicalEnv reference (or nil, nil for "no
// environment").
type LexicalEnvResolver func(ReferenceArgs) (*LexicalEnv, error)

// LexicalEnv is the environment itself: an internal map from Symbol to a
// list of entries, plus a parent getter, plus two lists of referenced
// environments (filtered and transitive), plus default metadata and an
// attached rebindings chain.
//
// See the package doc comment and Get's doc comment for the lookup
// contract. LexicalEnv values are always heap-allocated and referred to by
// pointer; there is no useful zero value other than EmptyEnv.
type LexicalEnv struct {
	parent EnvGetter
	node   Element

	// ownMap is nil for a derived env with no aliased primary, or an alias
	// of a primary's map (never copied), or freshly allocated and owned
	// for a primary env.
	ownMap map[symtab.Symbol][]internalMapElement

	referenced []referencedEnv
	transitive []*LexicalEnv

	defaultMD  Metadata
	rebindings *Rebindings
	refCount   int
}

// EmptyEnv is the distinguished singleton empty environment. Add on it is a
// no-op, Destroy on it is a no-op, and it is never refcounted: it is a
// process-wide value with a trivial lifecycle, initialized once here and
// never destroyed.
var EmptyEnv = &LexicalEnv{refCount: noRefcount}

// IsEmpty reports whether env is the EmptyEnv singleton.
func (env *LexicalEnv) IsEmpty() bool {
	return env == EmptyEnv
}

// IsPrimary reports whether env is a primary env (owned by an analysis
// unit, not by refcount).
func (env *LexicalEnv) IsPrimary() bool {
	return env.refCount == noRefcount
}

// Create allocates a new environment. If parent is a non-zero getter, its
// refcount share is bumped. The returned env's own map starts out freshly
// allocated and empty; its rebindings chain starts nil.
//
// isRefcounted selects the ownership regime: false makes a primary env
// (ref_count = noRefcount, owns its map, destroyed only by an explicit
// Destroy call from its owning unit); true makes a derived env with
// ref_count 1.
func Create(parent EnvGetter, node Element, isRefcounted bool, defaultMD Metadata) *LexicalEnv {
	parent.IncRef()
	env := &LexicalEnv{
		parent:    parent,
		node:      node,
		ownMap:    map[symtab.Symbol][]internalMapElement{},
		defaultMD: defaultMD,
	}
	if isRefcounted {
		env.refCount = 1
	} else {
		env.refCount = noRefcount
	}
	return env
}

// incRef bumps env's refcount. It is a fatal error (NegativeRefcount) to
// call it on an env whose refcount already underflowed, which would only
// happen after a prior Destroy — a use-after-free.
func (env *LexicalEnv) incRef() {
	if env == nil || env.IsEmpty() || env.IsPrimary() {
		return
	}
	if env.refCount <= 0 {
		panic(newFault(NegativeRefcount, "incRef on a destroyed env"))
	}
	env.refCount++
}

// decRef releases one refcount share. At the refcount-to-zero transition
// it invokes Destroy. No-op for EmptyEnv and for primary envs, which are
// never refcount-managed.
func (env *LexicalEnv) decRef() {
	if env == nil || env.IsEmpty() || env.IsPrimary() {
		return
	}
	if env.refCount <= 0 {
		panic(newFault(NegativeRefcount, "decRef past zero"))
	}
	env.refCount--
	if env.refCount == 0 {
		env.destroy()
	}
}

// IncRef is the exported form of incRef, for hosts that hold a getter-free
// direct pointer to a refcounted env (e.g. after Group or Orphan) and need
// to share it with another owner explicitly.
func (env *LexicalEnv) IncRef() { env.incRef() }

// DecRef is the exported form of decRef. On the refcount-to-zero
// transition the env is destroyed; callers must not dereference env after
// calling DecRef if they cannot prove another share is still live.
func (env *LexicalEnv) DecRef() { env.decRef() }

// Add inserts an entry into env's own map, creating the bucket for key if
// this is its first entry. It is a no-op on EmptyEnv. Entries within a
// bucket are kept in insertion order; Get reverses them so the most
// recently added entry is returned first.
func Add(env *LexicalEnv, key symtab.Symbol, element Element, md Metadata, resolver EntityResolver) {
	if env.IsEmpty() {
		return
	}
	env.ownMap[key] = append(env.ownMap[key], internalMapElement{
		element:  element,
		metadata: md,
		resolver: resolver,
	})
}

// Remove deletes the first entry in env's key bucket whose element equals
// element; it is a no-op if no such entry exists. Matching is by identity
// (==) rather than bucket index, so it stays correct even if Add calls
// interleave with Remove calls in ways that would invalidate a cached
// index — at the cost of an O(n) scan per call.
func Remove(env *LexicalEnv, key symtab.Symbol, element Element) {
	if env.IsEmpty() {
		return
	}
	bucket := env.ownMap[key]
	for i, e := range bucket {
		if e.element == element {
			env.ownMap[key] = append(bucket[:i:i], bucket[i+1:]...)
			return
		}
	}
}

// Reference appends a filtered reference to env: resolver is invoked lazily
// during lookup, and only consulted when the caller's From element can
// reach referencedFrom. The referenced env is not refcount-owned by env —
// ownership of whatever resolver returns is established fresh on each
// lookup and released by the lookup itself.
func Reference(env *LexicalEnv, referencedFrom Element, resolver LexicalEnvResolver) {
	if env.IsEmpty() {
		return
	}
	env.referenced = append(env.referenced, referencedEnv{
		fromNode: referencedFrom,
		resolver: resolver,
	})
}

// TransitiveReference appends target to env's transitive references and
// bumps target's refcount, since unlike filtered references, transitive
// references are always walked and are refcount-owned by the holding env.
// It is only legal on a refcounted (non-primary) env; calling it on a
// primary env is a NotRefcounted Fault.
func TransitiveReference(env *LexicalEnv, target *LexicalEnv) error {
	if env.IsEmpty() {
		return nil
	}
	if env.IsPrimary() {
		return newFault(NotRefcounted, "TransitiveReference on a primary env")
	}
	target.incRef()
	env.transitive = append(env.transitive, target)
	return nil
}
