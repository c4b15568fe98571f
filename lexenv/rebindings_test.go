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

package lexenv_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/setton/langkit/lexenv"
	"github.com/setton/langkit/symtab"
)

func mustEq(t *testing.T, l, r *lexenv.Rebindings) {
	t.Helper()
	eq, err := lexenv.IsEquivalent(l, r)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(eq))
}

func rebindingOf(a, b *lexenv.LexicalEnv) lexenv.Rebinding {
	return lexenv.Rebinding{
		OldEnv: lexenv.StaticGetter(a, false),
		NewEnv: lexenv.StaticGetter(b, false),
	}
}

func TestAppendIdentity(t *testing.T) {
	p := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	q := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	chain := lexenv.Create([]lexenv.Rebinding{rebindingOf(p, q)})

	appended := lexenv.Append(chain, lexenv.NoRebinding)
	mustEq(t, chain, appended)
}

func TestCombineAssociativity(t *testing.T) {
	a := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	b := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	c := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	d := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	e := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	f := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)

	chainA := lexenv.Create([]lexenv.Rebinding{rebindingOf(a, b)})
	chainB := lexenv.Create([]lexenv.Rebinding{rebindingOf(c, d)})
	chainC := lexenv.Create([]lexenv.Rebinding{rebindingOf(e, f)})

	left := lexenv.Combine(lexenv.Combine(chainA, chainB), chainC)
	right := lexenv.Combine(chainA, lexenv.Combine(chainB, chainC))
	mustEq(t, left, right)
}

func TestRebindingPrecedenceLatestWins(t *testing.T) {
	tab := symtab.New()
	k := tab.Intern("k")

	p := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	pOld := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	lexenv.Add(pOld, k, newNode("stale"), nil, nil)
	pNew := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	lexenv.Add(pNew, k, newNode("fresh"), nil, nil)

	chain := lexenv.Create([]lexenv.Rebinding{rebindingOf(p, pOld), rebindingOf(p, pNew)})

	got, err := lexenv.Get(p, k, lexenv.WithRebindings(chain))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(elements(got), []string{"fresh"}))
	lexenv.ReleaseEntities(got)
}

// TestRebindingPopReleasesDynamicOldEnv checks that popLatest releases the
// transient env a dynamic OldEnv getter's GetEnv() returns, even when it
// doesn't match the env being looked up. DynamicResolver's contract
// (getter.go) requires every call to return a fresh owned reference, so a
// non-matching scan must still decRef it exactly once.
func TestRebindingPopReleasesDynamicOldEnv(t *testing.T) {
	tab := symtab.New()
	k := tab.Intern("k")

	p := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	dynTarget := lexenv.Create(lexenv.EnvGetter{}, nil, true, nil)
	before := dynTarget.RefCount()

	dynOld := lexenv.DynamicGetter(nil, func(interface{}) (*lexenv.LexicalEnv, error) {
		dynTarget.IncRef()
		return dynTarget, nil
	})
	newTarget := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	lexenv.Add(newTarget, k, newNode("via-dynamic-rebind"), nil, nil)

	chain := lexenv.Create([]lexenv.Rebinding{{
		OldEnv: dynOld,
		NewEnv: lexenv.StaticGetter(newTarget, false),
	}})

	got, err := lexenv.Get(p, k, lexenv.WithRebindings(chain))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(got, 0), qt.Commentf("p never equals dynTarget, so the rebinding must never match"))
	lexenv.ReleaseEntities(got)

	qt.Assert(t, qt.Equals(dynTarget.RefCount(), before), qt.Commentf("popLatest must release the transient env GetEnv() returned for a non-matching dynamic OldEnv"))
}

func TestRebindingPop(t *testing.T) {
	tab := symtab.New()
	y := tab.Intern("y")

	p := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	pPrime := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	lexenv.Add(pPrime, y, newNode("from-p-prime"), nil, nil)

	chain := lexenv.Create([]lexenv.Rebinding{rebindingOf(p, pPrime)})

	got, err := lexenv.Get(p, y, lexenv.WithRebindings(chain))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(elements(got), []string{"from-p-prime"}))
	lexenv.ReleaseEntities(got)
}
