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

	"github.com/spf13/cobra"

	"github.com/setton/langkit/internal/toydecl"
	"github.com/setton/langkit/lexenv"
)

func newGetCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "get <scope> <key>",
		Short: "look up a symbol starting at a named scope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(file)
			if err != nil {
				return err
			}
			defer g.Close()
			return runGet(cmd.OutOrStdout(), g, args[0], args[1])
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "declaration file to read (- for stdin)")
	return cmd
}

func runGet(out io.Writer, g *toydecl.Graph, scopeName, key string) error {
	s, err := scopeOrRoot(g, scopeName)
	if err != nil {
		return err
	}
	if !g.Table.Has(key) {
		fmt.Fprintf(out, "(no declarations named %q)\n", key)
		return nil
	}
	sym := g.Table.Intern(key)
	entities, err := lexenv.Get(s.env, sym)
	if err != nil {
		return err
	}
	defer lexenv.ReleaseEntities(entities)

	if len(entities) == 0 {
		fmt.Fprintf(out, "(no declarations named %q visible from %s)\n", key, s.name)
		return nil
	}
	for _, e := range entities {
		fmt.Fprintf(out, "%s\n", describe(e.Element))
	}
	return nil
}

func describe(el lexenv.Element) string {
	switch v := el.(type) {
	case toydecl.Decl:
		return fmt.Sprintf("decl %s (line %d)", v.Name, v.Line)
	case toydecl.Scope:
		return fmt.Sprintf("scope %s (line %d)", v.Name, v.Line)
	default:
		return fmt.Sprintf("%v", v)
	}
}
