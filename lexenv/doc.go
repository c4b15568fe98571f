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

// Package lexenv implements the lexical environment engine that underpins
// name resolution in a generated language frontend. A generated frontend
// represents a parsed program as a tree of typed nodes; nodes expose
// environments that map symbols to declarations, and lookup walks a graph of
// parent links, referenced environments, and rebindings that re-target one
// environment to another during generic instantiation.
//
// The package is built around five cooperating concepts: Symbol (provided by
// package symtab), Metadata, EnvGetter, Rebindings, and LexicalEnv itself.
// Get is the lookup entry point; see its doc comment for the full algorithm.
//
// The engine is not internally synchronized. Callers must serialize
// operations on a given environment graph; concurrent readers on a frozen
// graph are outside the contract unless the host adds its own locking.
package lexenv
