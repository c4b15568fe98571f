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
	"github.com/spf13/cobra"

	"github.com/setton/langkit/internal/toydecl"
	"github.com/setton/langkit/lexenv/lexenvdump"
)

func newDumpCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "dump [scope]",
		Short: "print the environment tree rooted at a named scope (root by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(file)
			if err != nil {
				return err
			}
			defer g.Close()

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runDump(cmd, g, name)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "declaration file to read (- for stdin)")
	return cmd
}

func runDump(cmd *cobra.Command, g *toydecl.Graph, name string) error {
	s, err := scopeOrRoot(g, name)
	if err != nil {
		return err
	}
	return lexenvdump.Dump(cmd.OutOrStdout(), s.env)
}
