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

// Orphan returns a new refcounted env with no parent, env's own map
// aliased (not copied — mutations through one are visible through the
// other), copies of env's referenced and transitive vectors, and env's
// rebindings chain (with a fresh refcount share). It is used to cut a
// subtree loose from its lexical parent while preserving everything else
// name resolution needs to see through it.
func Orphan(env *LexicalEnv) *LexicalEnv {
	if env.IsEmpty() {
		return EmptyEnv
	}
	env.rebindings.incRef()
	orphan := &LexicalEnv{
		node:       env.node,
		ownMap:     env.ownMap,
		referenced: append([]referencedEnv(nil), env.referenced...),
		transitive: append([]*LexicalEnv(nil), env.transitive...),
		defaultMD:  env.defaultMD,
		rebindings: env.rebindings,
		refCount:   1,
	}
	for _, t := range orphan.transitive {
		t.incRef()
	}
	return orphan
}

// Group combines several envs into one for lookup purposes. Group([]) is
// EmptyEnv. Group of a single env returns that env with its refcount
// bumped — no wrapper is allocated, so Group([]*LexicalEnv{e}) behaves
// observably as e itself (same lookups, same ordering), modulo refcounts.
// Otherwise it builds a new refcounted env with no parent and no own
// content, adding each input as a transitive reference, so the inputs are
// consulted in argument order ahead of any (absent) parent walk.
func Group(envs []*LexicalEnv) *LexicalEnv {
	switch len(envs) {
	case 0:
		return EmptyEnv
	case 1:
		envs[0].incRef()
		return envs[0]
	}
	group := &LexicalEnv{refCount: 1}
	for _, e := range envs {
		// Group is freshly allocated and refcounted, so this can never
		// fail with NotRefcounted.
		_ = TransitiveReference(group, e)
	}
	return group
}

// RebindEnv constructs a new refcounted env with no own content, whose
// rebindings chain is base's rebindings with (toRebind, rebindTo) appended,
// and which transitively references base so base's own/referenced/
// transitive/parent content is still reachable through it.
func RebindEnv(base *LexicalEnv, toRebind, rebindTo EnvGetter) *LexicalEnv {
	binding := Rebinding{OldEnv: toRebind, NewEnv: rebindTo}
	env := &LexicalEnv{
		rebindings: Append(base.rebindings, binding),
		refCount:   1,
	}
	// env is freshly allocated and refcounted.
	_ = TransitiveReference(env, base)
	return env
}

// RebindEnvInfo short-circuits to base (with a bumped refcount) when info
// is the identity EntityInfo. Otherwise it combines base's rebindings with
// info's and transitively references base, the way a resolver threads an
// incoming entity's rebindings through whatever child env it builds.
func RebindEnvInfo(base *LexicalEnv, info EntityInfo) *LexicalEnv {
	if info.IsIdentity() {
		base.incRef()
		return base
	}
	env := &LexicalEnv{
		rebindings: Combine(base.rebindings, info.Rebindings),
		refCount:   1,
	}
	_ = TransitiveReference(env, base)
	return env
}
