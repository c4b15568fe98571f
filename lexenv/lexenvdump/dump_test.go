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

package lexenvdump_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/setton/langkit/lexenv"
	"github.com/setton/langkit/lexenv/lexenvdump"
	"github.com/setton/langkit/symtab"
)

func TestDumpShowsParentAndKeyCount(t *testing.T) {
	tab := symtab.New()
	k := tab.Intern("k")

	parent := lexenv.Create(lexenv.EnvGetter{}, "parent-node", false, nil)
	lexenv.Add(parent, k, "decl", nil, nil)

	child := lexenv.Create(lexenv.StaticGetter(parent, false), "child-node", false, nil)

	var buf bytes.Buffer
	err := lexenvdump.Dump(&buf, child)
	qt.Assert(t, qt.IsNil(err))

	out := buf.String()
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "keys=0")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "parent:")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "keys=1")))
}

func TestDumpEmptyEnv(t *testing.T) {
	var buf bytes.Buffer
	err := lexenvdump.Dump(&buf, lexenv.EmptyEnv)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(strings.TrimSpace(buf.String()), "EmptyEnv"))
}
