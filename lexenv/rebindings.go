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

// Rebinding is a single (old_env -> new_env) directive: during lookup
// descent, any env equal to old_env is resolved through new_env instead.
// NoRebinding is the identity value, used by Append to mean "no-op".
type Rebinding struct {
	OldEnv EnvGetter
	NewEnv EnvGetter
}

// NoRebinding is the zero Rebinding, Append's identity argument.
var NoRebinding = Rebinding{}

func (r Rebinding) isZero() bool {
	return r.OldEnv.IsZero() && r.NewEnv.IsZero()
}

// isEquivalent compares two rebindings by resolved static identity; it is
// only meaningful when both getters involved are static, matching
// EnvGetter.IsEquivalent's own restriction.
func (r Rebinding) isEquivalent(o Rebinding) (bool, error) {
	oldEq, err := r.OldEnv.IsEquivalent(o.OldEnv)
	if err != nil {
		return false, err
	}
	if !oldEq {
		return false, nil
	}
	return r.NewEnv.IsEquivalent(o.NewEnv)
}

func (r Rebinding) incRef() {
	r.OldEnv.IncRef()
	r.NewEnv.IncRef()
}

func (r Rebinding) decRef() {
	r.OldEnv.DecRef()
	r.NewEnv.DecRef()
}

// Rebindings is an immutable, refcounted, ordered chain of Rebinding
// values. A nil *Rebindings denotes the empty chain; it is never allocated
// as a zero-sized struct, so nil checks are the only valid way to test for
// emptiness.
//
// Order is significant: lookup scans from most-recent (end of Entries) to
// oldest, and only the first (i.e. latest) match for a given old_env is
// applied — "most-recent rebinding wins".
type Rebindings struct {
	Entries  []Rebinding
	refCount int
}

// Create builds a fresh chain with refcount 1 from entries, bumping the
// refcount share on every contained getter pair. An empty entries slice
// yields nil, the canonical empty chain.
func Create(entries []Rebinding) *Rebindings {
	if len(entries) == 0 {
		return nil
	}
	cp := make([]Rebinding, len(entries))
	copy(cp, entries)
	for _, e := range cp {
		e.incRef()
	}
	return &Rebindings{Entries: cp, refCount: 1}
}

// Len returns the number of entries in the chain; nil has length 0.
func (r *Rebindings) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Entries)
}

// Append returns a new chain consisting of chain's entries plus binding.
// If binding is NoRebinding, Append returns chain unchanged but with a
// fresh refcount share (so the caller can still release its own result
// independently of chain's other owners).
func Append(chain *Rebindings, binding Rebinding) *Rebindings {
	if binding.isZero() {
		chain.incRef()
		return chain
	}
	n := chain.Len()
	entries := make([]Rebinding, n+1)
	if chain != nil {
		copy(entries, chain.Entries)
	}
	entries[n] = binding
	binding.incRef()
	for i := 0; i < n; i++ {
		entries[i].incRef()
	}
	return &Rebindings{Entries: entries, refCount: 1}
}

// Combine concatenates L's entries followed by R's, returning the shorter
// possible result: nil when both are empty, a fresh share of the non-empty
// side when exactly one is empty, otherwise a new chain holding both.
func Combine(l, r *Rebindings) *Rebindings {
	switch {
	case l.Len() == 0 && r.Len() == 0:
		return nil
	case l.Len() == 0:
		r.incRef()
		return r
	case r.Len() == 0:
		l.incRef()
		return l
	}
	entries := make([]Rebinding, 0, l.Len()+r.Len())
	entries = append(entries, l.Entries...)
	entries = append(entries, r.Entries...)
	for _, e := range entries {
		e.incRef()
	}
	return &Rebindings{Entries: entries, refCount: 1}
}

// IsEquivalent holds iff both chains are nil, or both have equal length
// and each slot's (old_env, new_env) pair is pairwise equivalent.
func IsEquivalent(l, r *Rebindings) (bool, error) {
	if l.Len() != r.Len() {
		return false, nil
	}
	if l.Len() == 0 {
		return true, nil
	}
	for i := range l.Entries {
		eq, err := l.Entries[i].isEquivalent(r.Entries[i])
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

func (r *Rebindings) incRef() {
	if r == nil {
		return
	}
	r.refCount++
}

// decRef releases this chain's refcount share. At the refcount-to-zero
// transition it releases every contained binding's getters.
func (r *Rebindings) decRef() {
	if r == nil {
		return
	}
	if r.refCount <= 0 {
		panic(newFault(NegativeRefcount, "rebindings chain already at zero"))
	}
	r.refCount--
	if r.refCount == 0 {
		for _, e := range r.Entries {
			e.decRef()
		}
	}
}

// popLatest consumes one share of chain (the caller's owned reference) and
// scans it from most-recent to oldest for a slot whose OldEnv resolves to
// env. On no match it returns chain itself as popped, transferring the same
// share back to the caller. On a match it builds a fresh chain with that
// one slot removed, releases the input share, and returns the fresh chain
// (refcount 1) plus the resolved NewEnv getter.
//
// Either way the caller ends up owning exactly one share of the returned
// popped chain, so a single decRef on it balances the books.
func popLatest(chain *Rebindings, env *LexicalEnv) (popped *Rebindings, newEnv EnvGetter, matched bool, err error) {
	for i := chain.Len() - 1; i >= 0; i-- {
		old := chain.Entries[i].OldEnv
		resolved, getErr := old.GetEnv()
		if getErr != nil {
			return nil, EnvGetter{}, false, getErr
		}
		isMatch := resolved == env
		if old.IsDynamic() || old.isRefcountedStatic() {
			resolved.decRef()
		}
		if !isMatch {
			continue
		}
		rest := make([]Rebinding, 0, chain.Len()-1)
		rest = append(rest, chain.Entries[:i]...)
		rest = append(rest, chain.Entries[i+1:]...)
		matchedNewEnv := chain.Entries[i].NewEnv
		fresh := Create(rest)
		chain.decRef()
		return fresh, matchedNewEnv, true, nil
	}
	return chain, EnvGetter{}, false, nil
}

func (g EnvGetter) isRefcountedStatic() bool {
	return !g.IsDynamic() && g.static != nil && g.isRefcounted
}
