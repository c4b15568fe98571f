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

// Package toydecl is the external collaborator the command-line demo uses
// to exercise lexenv: a minimal, indentation-based declaration language
// that builds a LexicalEnv graph and nothing more. It does not parse
// expressions, does not type-check, and is not meant to model a real
// language — it exists only to give the lexenv CLI demo and its scripted
// tests something concrete to build environments from.
//
// Grammar (one directive per line; blank lines and "#" comments ignored):
//
//	scope NAME:        open a nested scope, indented lines are its body
//	decl NAME          add a declaration named NAME to the current scope
//	link A B           make scope A transitively reference scope B
//
// Indentation is the count of leading spaces. A line belongs to the
// innermost open scope whose "scope" line is indented less than it; no
// fixed indent unit is checked.
package toydecl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/setton/langkit/lexenv"
	"github.com/setton/langkit/symtab"
)

// Decl is the Element stored for a "decl NAME" line.
type Decl struct {
	Name string
	Line int
}

// Scope records a "scope NAME:" line and the env it opened; it is the unit
// of naming Graph.Scopes indexes by. Scopes are not added as entries to
// their enclosing env.
type Scope struct {
	Name string
	Line int
	Env  *lexenv.LexicalEnv
}

// Graph is the result of parsing a declaration file: every named scope,
// keyed by name for lookup by the CLI and its scripted tests. The implicit
// top-level scope is Root and has no entry in Scopes.
type Graph struct {
	Table  *symtab.Table
	Root   *lexenv.LexicalEnv
	Scopes map[string]*Scope
}

type lineTok struct {
	indent int
	text   string
	lineNo int
}

// Parse reads a declaration file and builds the LexicalEnv graph it
// describes. The returned Graph's envs are refcounted (except Root, which
// is primary, matching how a real frontend owns its per-unit root
// environment) and must be released by the caller via Graph.Close.
func Parse(r io.Reader) (*Graph, error) {
	lines, err := tokenize(r)
	if err != nil {
		return nil, err
	}

	tab := symtab.New()
	root := lexenv.Create(lexenv.EnvGetter{}, nil, false, nil)
	g := &Graph{Table: tab, Root: root, Scopes: map[string]*Scope{}}

	type frame struct {
		indent int
		env    *lexenv.LexicalEnv
	}
	stack := []frame{{indent: -1, env: root}}
	var links []struct {
		from, to string
		lineNo   int
	}

	for _, ln := range lines {
		for len(stack) > 1 && ln.indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		current := stack[len(stack)-1].env

		switch {
		case strings.HasPrefix(ln.text, "scope "):
			name := strings.TrimSuffix(strings.TrimPrefix(ln.text, "scope "), ":")
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, fmt.Errorf("line %d: scope needs a name", ln.lineNo)
			}
			scopeEnv := lexenv.Create(lexenv.StaticGetter(current, true), name, true, nil)
			g.Scopes[name] = &Scope{Name: name, Line: ln.lineNo, Env: scopeEnv}
			stack = append(stack, frame{indent: ln.indent, env: scopeEnv})

		case strings.HasPrefix(ln.text, "decl "):
			name := strings.TrimSpace(strings.TrimPrefix(ln.text, "decl "))
			if name == "" {
				return nil, fmt.Errorf("line %d: decl needs a name", ln.lineNo)
			}
			sym := tab.Intern(name)
			lexenv.Add(current, sym, Decl{Name: name, Line: ln.lineNo}, nil, nil)

		case strings.HasPrefix(ln.text, "link "):
			fields := strings.Fields(ln.text)
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: link needs exactly two scope names", ln.lineNo)
			}
			links = append(links, struct {
				from, to string
				lineNo   int
			}{fields[1], fields[2], ln.lineNo})

		default:
			return nil, fmt.Errorf("line %d: unrecognized directive %q", ln.lineNo, ln.text)
		}
	}

	for _, l := range links {
		from, ok := g.Scopes[l.from]
		if !ok {
			g.Close()
			return nil, fmt.Errorf("line %d: link references unknown scope %q", l.lineNo, l.from)
		}
		to, ok := g.Scopes[l.to]
		if !ok {
			g.Close()
			return nil, fmt.Errorf("line %d: link references unknown scope %q", l.lineNo, l.to)
		}
		if err := lexenv.TransitiveReference(from.Env, to.Env); err != nil {
			g.Close()
			return nil, fmt.Errorf("line %d: %w", l.lineNo, err)
		}
	}

	return g, nil
}

// Close releases every scope env and the root env. It is idempotent only
// in the sense that the underlying DecRef calls are; calling it twice is a
// caller bug like any other double-release.
func (g *Graph) Close() {
	for _, s := range g.Scopes {
		s.Env.DecRef()
	}
	lexenv.Destroy(g.Root)
}

func tokenize(r io.Reader) ([]lineTok, error) {
	var out []lineTok
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := len(raw) - len(strings.TrimLeft(raw, " "))
		out = append(out, lineTok{indent: indent, text: trimmed, lineNo: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
