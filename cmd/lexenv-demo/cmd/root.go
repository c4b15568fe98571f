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

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/setton/langkit/internal/toydecl"
	"github.com/setton/langkit/lexenv"
)

// New builds the lexenv-demo command tree: get, dump, and repl, all
// operating on a declaration file parsed by package toydecl.
func New() *cobra.Command {
	root := &cobra.Command{
		Use:           "lexenv-demo",
		Short:         "exercise the lexenv engine against a toy declaration file",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newGetCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newReplCmd())
	return root
}

func loadGraph(path string) (*toydecl.Graph, error) {
	var r io.Reader
	if path == "-" || path == "" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return toydecl.Parse(r)
}

func scopeOrRoot(g *toydecl.Graph, name string) (env scopeEnv, err error) {
	if name == "" || name == "." {
		return scopeEnv{name: "<root>", env: g.Root}, nil
	}
	s, ok := g.Scopes[name]
	if !ok {
		return scopeEnv{}, fmt.Errorf("no such scope %q", name)
	}
	return scopeEnv{name: s.Name, env: s.Env}, nil
}

// scopeEnv names an env purely for error/printing purposes; toydecl's own
// *lexenv.LexicalEnv doesn't carry a display name once resolved.
type scopeEnv struct {
	name string
	env  *lexenv.LexicalEnv
}
