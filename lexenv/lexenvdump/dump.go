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

// Package lexenvdump renders a lexical environment graph as an indented
// tree for debugging, the way a compiler frontend might dump its scope
// graph when something under semantic analysis looks wrong. It is purely a
// diagnostics aid: nothing in lexenv depends on it, and lookup order never
// depends on anything computed here.
package lexenvdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/kr/pretty"

	"github.com/setton/langkit/lexenv"
)

// tagger assigns a short, stable-within-a-dump label to each env so that
// shared/cyclic references in the printed tree can refer back to an
// already-visited node instead of re-descending into it forever. The
// label itself is cosmetic — a random v4 UUID's first 8 hex characters —
// and never participates in equality or lookup.
type tagger struct {
	tags map[*lexenv.LexicalEnv]string
}

func newTagger() *tagger { return &tagger{tags: map[*lexenv.LexicalEnv]string{}} }

func (t *tagger) tagFor(env *lexenv.LexicalEnv) (tag string, isNew bool) {
	if existing, ok := t.tags[env]; ok {
		return existing, false
	}
	tag = uuid.New().String()[:8]
	t.tags[env] = tag
	return tag, true
}

// Dump writes an indented, human-readable rendering of env and everything
// reachable from it (transitive references and the parent chain; filtered
// references are only counted, not listed or descended into, since
// resolving them can have side effects) to w.
func Dump(w io.Writer, env *lexenv.LexicalEnv) error {
	return dump(w, env, newTagger(), 0)
}

func dump(w io.Writer, env *lexenv.LexicalEnv, t *tagger, depth int) error {
	indent := strings.Repeat("  ", depth)
	if env == nil {
		_, err := fmt.Fprintf(w, "%s<nil>\n", indent)
		return err
	}
	if env.IsEmpty() {
		_, err := fmt.Fprintf(w, "%sEmptyEnv\n", indent)
		return err
	}

	tag, isNew := t.tagFor(env)
	regime := "refcounted"
	if env.IsPrimary() {
		regime = "primary"
	}
	if _, err := fmt.Fprintf(w, "%senv %s (%s, node=%# v, keys=%d, referenced=%d, rebindings-depth=%d)\n",
		indent, tag, regime, pretty.Formatter(env.Node()), env.OwnKeyCount(), env.ReferencedCount(), env.RebindingsDepth()); err != nil {
		return err
	}
	if !isNew {
		_, err := fmt.Fprintf(w, "%s  (already shown above as %s)\n", indent, tag)
		return err
	}

	for _, t2 := range env.Transitive() {
		if err := dump(w, t2, t, depth+1); err != nil {
			return err
		}
	}

	parent, err := env.Parent()
	if err != nil {
		return err
	}
	if parent != nil {
		if _, err := fmt.Fprintf(w, "%sparent:\n", indent); err != nil {
			parent.DecRef()
			return err
		}
		err := dump(w, parent, t, depth+1)
		parent.DecRef()
		if err != nil {
			return err
		}
	}

	return nil
}
