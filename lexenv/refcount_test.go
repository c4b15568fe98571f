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
	"math/rand"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/setton/langkit/lexenv"
)

// TestRefcountBalance runs a random sequence of Create/IncRef/DecRef and
// checks that it never panics with a negative-refcount fault, which is the
// only way "live envs == created - destroyed" could be violated given the
// engine has no global registry to query directly.
func TestRefcountBalance(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	var live []*lexenv.LexicalEnv

	for i := 0; i < 200; i++ {
		switch {
		case len(live) == 0 || rnd.Intn(2) == 0:
			env := lexenv.Create(lexenv.EnvGetter{}, nil, true, nil)
			live = append(live, env)
		default:
			idx := rnd.Intn(len(live))
			env := live[idx]
			if rnd.Intn(3) == 0 {
				env.IncRef()
				// Immediately balance the extra share so this loop's
				// bookkeeping (one logical "live" entry per Create)
				// stays accurate while still exercising IncRef.
				env.DecRef()
			}
			live = append(live[:idx], live[idx+1:]...)
			env.DecRef()
		}
	}

	for _, env := range live {
		env.DecRef()
	}

	// No assertion beyond "this didn't panic": a negative refcount or a
	// double-destroy would have panicked via the NegativeRefcount fault
	// before reaching here, which is the property under test.
	qt.Assert(t, qt.IsTrue(true))
}

func TestGroupUnitRefcount(t *testing.T) {
	env := lexenv.Create(lexenv.EnvGetter{}, nil, true, nil)
	before := env

	grouped := lexenv.Group([]*lexenv.LexicalEnv{env})
	qt.Assert(t, qt.Equals(grouped, before))
	grouped.DecRef() // releases Group's bump
	env.DecRef()     // releases the original Create share
}
