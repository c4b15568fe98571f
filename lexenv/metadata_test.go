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

// tagSet is a Metadata implementation that unions string tags, used to
// check that per-entry metadata and an env's default metadata combine the
// way the host's Combine operator says they should.
type tagSet map[string]bool

func (t tagSet) Combine(other lexenv.Metadata) lexenv.Metadata {
	o, _ := other.(tagSet)
	merged := make(tagSet, len(t)+len(o))
	for k := range t {
		merged[k] = true
	}
	for k := range o {
		merged[k] = true
	}
	return merged
}

func tags(s ...string) tagSet {
	t := make(tagSet, len(s))
	for _, x := range s {
		t[x] = true
	}
	return t
}

func TestEntryMetadataCombinesWithEnvDefault(t *testing.T) {
	tab := symtab.New()
	k := tab.Intern("k")

	env := lexenv.Create(lexenv.EnvGetter{}, nil, false, tags("public"))
	lexenv.Add(env, k, newNode("N"), tags("deprecated"), nil)

	got, err := lexenv.Get(env, k)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(got, 1))
	merged := got[0].Info.Metadata.(tagSet)
	qt.Assert(t, qt.IsTrue(merged["public"] && merged["deprecated"]))
	lexenv.ReleaseEntities(got)
}

func TestEntityResolverReplacesEntity(t *testing.T) {
	tab := symtab.New()
	k := tab.Intern("k")

	env := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	resolved := newNode("resolved-target")
	resolver := func(prelim lexenv.Entity) (lexenv.Entity, error) {
		return lexenv.Entity{Element: resolved, Info: prelim.Info}, nil
	}
	lexenv.Add(env, k, newNode("raw"), nil, resolver)

	got, err := lexenv.Get(env, k)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(elements(got), []string{"resolved-target"}))
	lexenv.ReleaseEntities(got)
}

func TestDynamicGetterParent(t *testing.T) {
	tab := symtab.New()
	k := tab.Intern("k")

	parent := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	lexenv.Add(parent, k, newNode("from-dynamic-parent"), nil, nil)

	calls := 0
	dyn := lexenv.DynamicGetter(parent, func(state interface{}) (*lexenv.LexicalEnv, error) {
		calls++
		return state.(*lexenv.LexicalEnv), nil
	})
	child := lexenv.Create(dyn, nil, false, nil)

	got, err := lexenv.Get(child, k)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(elements(got), []string{"from-dynamic-parent"}))
	qt.Assert(t, qt.Equals(calls, 1))
	lexenv.ReleaseEntities(got)
}
