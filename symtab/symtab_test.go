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

package symtab_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/setton/langkit/symtab"
)

func TestInternEquality(t *testing.T) {
	tab := symtab.New()
	a1 := tab.Intern("foo")
	a2 := tab.Intern("foo")
	b := tab.Intern("bar")

	qt.Assert(t, qt.Equals(a1, a2))
	qt.Assert(t, qt.Not(qt.Equals(a1, b)))
	qt.Assert(t, qt.Equals(a1.String(), "foo"))
}

func TestZeroSymbol(t *testing.T) {
	var s symtab.Symbol
	qt.Assert(t, qt.IsTrue(s.IsZero()))
	qt.Assert(t, qt.Equals(s.String(), "<zero symbol>"))
}

func TestChildSeesParentInterning(t *testing.T) {
	parent := symtab.New()
	p := parent.Intern("shared")

	child := symtab.NewChild(parent)
	c := child.Intern("shared")

	qt.Assert(t, qt.Equals(p.String(), c.String()))
	qt.Assert(t, qt.Equals(p, c), qt.Commentf("symbols for the same string via parent and child must compare == , not just stringify the same"))
	qt.Assert(t, qt.IsTrue(child.Has("shared")))
}

func TestChildPrivateInterningInvisibleToParent(t *testing.T) {
	parent := symtab.New()
	child := symtab.NewChild(parent)
	child.Intern("only-in-child")

	qt.Assert(t, qt.IsFalse(parent.Has("only-in-child")))
	qt.Assert(t, qt.IsTrue(child.Has("only-in-child")))
}
