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

package lexenv

import "fmt"

// Kind classifies the fatal, programming-error faults the engine can raise.
// These are never recoverable in the way a resolver failure is: they
// indicate the caller violated an invariant of the engine itself.
type Kind int

const (
	// InvalidOperation is raised by IsEquivalent when given a dynamic
	// getter, since dynamic equivalence is undecidable without
	// side-effecting the callback state.
	InvalidOperation Kind = iota
	// NotRefcounted is raised by TransitiveReference on a primary env.
	NotRefcounted
	// NegativeRefcount is raised when a refcount would drop below zero.
	NegativeRefcount
	// EmptyEnvMap names the fault of dereferencing EmptyEnv's map. No
	// operation in this package raises it: Add, Remove, Reference and
	// TransitiveReference are no-ops on EmptyEnv, and Get reads its nil
	// map as empty.
	EmptyEnvMap
)

func (k Kind) String() string {
	switch k {
	case InvalidOperation:
		return "invalid operation"
	case NotRefcounted:
		return "env is not refcounted"
	case NegativeRefcount:
		return "negative refcount"
	case EmptyEnvMap:
		return "EmptyEnv has no map"
	default:
		return "unknown fault"
	}
}

// Fault is a programming-error fault: a violation of one of the engine's
// invariants by the caller, as opposed to a resolver failure (which
// propagates as whatever error the resolver returned). Callers distinguish
// the two kinds of failure with errors.As.
type Fault struct {
	Kind Kind
	// Msg gives fault-specific detail, e.g. which env or getter was
	// involved. It is for diagnostics only, never parsed by callers.
	Msg string
}

func (f *Fault) Error() string {
	if f.Msg == "" {
		return f.Kind.String()
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Msg)
}

func newFault(k Kind, format string, args ...interface{}) *Fault {
	return &Fault{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// resolverError wraps an error returned by a host-supplied resolver
// (a referenced-env resolver or an entity resolver) with a short context
// naming which kind of resolver failed, so errors.Unwrap still reaches the
// original cause.
type resolverError struct {
	context string
	cause   error
}

func (e *resolverError) Error() string {
	return fmt.Sprintf("%s: %v", e.context, e.cause)
}

func (e *resolverError) Unwrap() error {
	return e.cause
}

func wrapResolverErr(context string, err error) error {
	if err == nil {
		return nil
	}
	return &resolverError{context: context, cause: err}
}
