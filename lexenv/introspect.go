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

// NoRefcount is the exported form of the ref_count sentinel marking a
// primary env, for callers (debug dumps, tests) that want to report or
// compare against an env's raw refcount.
const NoRefcount = noRefcount

// Node returns the client AST node this env is attached to (NoElement if
// it was never given one, as is typical for derived envs).
func (env *LexicalEnv) Node() Element {
	if env == nil {
		return NoElement
	}
	return env.node
}

// RefCount returns the raw ref_count field: NoRefcount for a primary env,
// otherwise the live share count (always >= 1 for a reachable derived
// env). It exists for diagnostics; engine logic should use IsPrimary.
func (env *LexicalEnv) RefCount() int {
	if env == nil {
		return 0
	}
	return env.refCount
}

// OwnKeyCount returns the number of distinct symbols with at least one
// entry in env's own map, or 0 for a derived env with no aliased map.
func (env *LexicalEnv) OwnKeyCount() int {
	if env == nil {
		return 0
	}
	return len(env.ownMap)
}

// ReferencedCount returns the number of filtered references env holds.
func (env *LexicalEnv) ReferencedCount() int {
	if env == nil {
		return 0
	}
	return len(env.referenced)
}

// Transitive returns a read-only snapshot of env's transitive references.
// The returned slice must not be mutated or retained past a call that
// could destroy env.
func (env *LexicalEnv) Transitive() []*LexicalEnv {
	if env == nil {
		return nil
	}
	return append([]*LexicalEnv(nil), env.transitive...)
}

// Parent resolves env's parent getter, returning a fresh owned reference
// exactly like Get's own internal parent-walk does. Callers must release
// the result with DecRef (safe to call even on a nil or primary result).
func (env *LexicalEnv) Parent() (*LexicalEnv, error) {
	if env == nil {
		return nil, nil
	}
	return env.parent.GetEnv()
}

// RebindingsDepth returns the length of env's own attached rebindings
// chain (not including any chain threaded through a particular Get call).
func (env *LexicalEnv) RebindingsDepth() int {
	if env == nil {
		return 0
	}
	return env.rebindings.Len()
}
