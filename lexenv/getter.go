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

// DynamicResolver computes an environment from opaque state, on demand. It
// must return a fresh owned reference (i.e. a reference the caller of
// GetEnv is responsible for releasing).
type DynamicResolver func(state interface{}) (*LexicalEnv, error)

// EnvGetter is a handle that resolves, on demand, to an environment. It is
// either a static getter, wrapping a fixed *LexicalEnv, or a dynamic one,
// wrapping a callback plus opaque state. The zero EnvGetter is the "no
// getter" value (GetEnv on it returns nil, nil).
type EnvGetter struct {
	// static is set for a static getter.
	static *LexicalEnv
	// isRefcounted records whether this getter holds a refcount share on
	// static (only meaningful when static != nil).
	isRefcounted bool

	// dynState/dynFn are set for a dynamic getter. A getter is dynamic iff
	// dynFn != nil.
	dynState interface{}
	dynFn    DynamicResolver
}

// StaticGetter wraps a fixed environment. If isRefcounted is true, the
// getter takes one refcount share on env (the caller's own share, if any,
// is untouched — pass a fresh IncRef'd reference, or bump one explicitly,
// depending on whether ownership is being transferred).
func StaticGetter(env *LexicalEnv, isRefcounted bool) EnvGetter {
	return EnvGetter{static: env, isRefcounted: isRefcounted}
}

// DynamicGetter wraps a callback and its opaque state. Dynamic getters are
// never refcount-owning themselves; IncRef/DecRef on the returned getter are
// no-ops, and the callback is responsible for the lifetime of whatever it
// returns from GetEnv.
func DynamicGetter(state interface{}, fn DynamicResolver) EnvGetter {
	return EnvGetter{dynState: state, dynFn: fn}
}

// IsZero reports whether g is the "no getter" value: neither static nor
// dynamic. Parent getters on root envs are typically zero.
func (g EnvGetter) IsZero() bool {
	return g.static == nil && g.dynFn == nil
}

// IsDynamic reports whether g wraps a callback rather than a fixed env.
func (g EnvGetter) IsDynamic() bool {
	return g.dynFn != nil
}

// GetEnv resolves g to an environment, returning a fresh owned reference.
// For a static getter this increments the refcount (when isRefcounted) and
// returns the same *LexicalEnv; for a dynamic getter it invokes the
// callback, which itself must return an owned reference. The zero
// EnvGetter resolves to (nil, nil).
func (g EnvGetter) GetEnv() (*LexicalEnv, error) {
	if g.IsZero() {
		return nil, nil
	}
	if g.IsDynamic() {
		return g.dynFn(g.dynState)
	}
	if g.isRefcounted {
		g.static.incRef()
	}
	return g.static, nil
}

// IncRef bumps the refcount share this getter holds, if any. No-op for
// dynamic getters and for static getters over a primary (non-refcounted)
// env or a non-owning static getter.
func (g EnvGetter) IncRef() {
	if g.IsDynamic() || g.static == nil || !g.isRefcounted {
		return
	}
	g.static.incRef()
}

// DecRef releases the refcount share this getter holds, if any, under the
// same conditions as IncRef.
func (g EnvGetter) DecRef() {
	if g.IsDynamic() || g.static == nil || !g.isRefcounted {
		return
	}
	g.static.decRef()
}

// IsEquivalent compares the resolved environment identity of two getters.
// It is only defined for static getters: calling it with a dynamic operand
// on either side is a programming error (dynamic equivalence is
// undecidable without side-effecting the callback state), reported as an
// InvalidOperation Fault.
func (g EnvGetter) IsEquivalent(other EnvGetter) (bool, error) {
	if g.IsDynamic() || other.IsDynamic() {
		return false, newFault(InvalidOperation, "IsEquivalent called with a dynamic getter")
	}
	return g.static == other.static, nil
}

// resolvedStaticEnv returns the *LexicalEnv a static getter wraps without
// bumping any refcount. It returns nil for dynamic and zero getters;
// dynamic getters must go through GetEnv since resolving them can have
// side effects and must be paired with a release.
func (g EnvGetter) resolvedStaticEnv() *LexicalEnv {
	return g.static
}
