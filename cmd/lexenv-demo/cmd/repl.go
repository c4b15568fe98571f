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
	"bufio"
	"fmt"
	"io"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/setton/langkit/internal/toydecl"
	"github.com/setton/langkit/lexenv/lexenvdump"
)

// newReplCmd builds an interactive session over a single loaded graph: each
// line is tokenized with shlex (so scope/key names can be quoted) and
// dispatched to the same logic the get and dump subcommands use.
func newReplCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "interactively query a loaded declaration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(file)
			if err != nil {
				return err
			}
			defer g.Close()
			return runRepl(cmd.InOrStdin(), cmd.OutOrStdout(), g)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "declaration file to read (- for stdin)")
	return cmd
}

func runRepl(in io.Reader, out io.Writer, g *toydecl.Graph) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "lexenv> ")
		if !scanner.Scan() {
			break
		}
		fields, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "parse error: %v\n", err)
			continue
		}
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return scanner.Err()
		}
		if err := dispatch(out, g, fields); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func dispatch(out io.Writer, g *toydecl.Graph, fields []string) error {
	switch fields[0] {
	case "get":
		if len(fields) != 3 {
			return fmt.Errorf("usage: get <scope> <key>")
		}
		return runGet(out, g, fields[1], fields[2])
	case "dump":
		name := ""
		if len(fields) == 2 {
			name = fields[1]
		} else if len(fields) > 2 {
			return fmt.Errorf("usage: dump [scope]")
		}
		s, err := scopeOrRoot(g, name)
		if err != nil {
			return err
		}
		return lexenvdump.Dump(out, s.env)
	default:
		return fmt.Errorf("unknown command %q (expected get|dump)", fields[0])
	}
}
