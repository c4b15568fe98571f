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

// Command lexenv-demo is a small driver over package lexenv: it reads a
// toy declaration file (see package toydecl), builds the environment
// graph it describes, and answers name-resolution queries against it. It
// exists to exercise the engine end to end, not as a real language tool.
package main

import (
	"fmt"
	"os"

	"github.com/setton/langkit/cmd/lexenv-demo/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
