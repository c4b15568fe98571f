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

import "github.com/setton/langkit/symtab"

// Option configures a Get call. The zero value of every option field
// matches Get's documented defaults (From = NoElement, no rebindings).
type Option func(*queryOpts)

type queryOpts struct {
	from       Element
	canReach   CanReachFunc
	rebindings *Rebindings
}

// WithFrom restricts the result to entities reachable from the given
// element, using canReach to decide reachability. Passing NoElement (or
// never using this option) disables the filter entirely, per CanReach's
// contract that CanReach(x, NoElement) behaves as always-true.
func WithFrom(from Element, canReach CanReachFunc) Option {
	return func(o *queryOpts) {
		o.from = from
		o.canReach = canReach
	}
}

// WithRebindings seeds the lookup with caller-supplied rebindings, placed
// ahead of env's own rebindings chain; since the latest matching rebinding
// wins, env's own rebinding for an env takes precedence over one supplied
// here for the same env. Most
// callers never need this directly; it exists for resolvers that must
// thread an incoming entity's rebindings into a recursive Get call.
func WithRebindings(r *Rebindings) Option {
	return func(o *queryOpts) { o.rebindings = r }
}

// Get looks up key starting at env, walking own entries, filtered
// references, transitive references, and the parent chain, applying
// rebindings en route, and returns an ordered, deduplication-free slice of
// Entity. The concatenation order — own, filtered references, transitive
// references, parent — is an observable contract that downstream semantic
// analyses depend on; so is the newest-entry-first order within a single
// symbol bucket.
//
// The caller owns every Entity in the returned slice (each carries a
// rebindings share) and must call ReleaseEntities on the slice, or Release
// on each Entity individually, once done with them.
//
// A resolver error (from a referenced-env resolver, a transitive env's own
// resolver chain, or an entry's EntityResolver) propagates after any
// transient share acquired during that call is released; errors from a
// referenced-env resolver or an EntityResolver are wrapped with the kind of
// resolver that failed, and errors.Is/As still reach the original. Get
// never returns a partial result alongside an error.
func Get(env *LexicalEnv, key symtab.Symbol, opts ...Option) ([]Entity, error) {
	var o queryOpts
	for _, opt := range opts {
		opt(&o)
	}
	return get(env, key, o.from, o.canReach, true, o.rebindings)
}

func get(env *LexicalEnv, key symtab.Symbol, from Element, canReach CanReachFunc, recursive bool, rebindings *Rebindings) (result []Entity, err error) {
	if env == nil {
		return nil, nil
	}

	// Step 2: caller rebindings first, then env's own.
	current := Combine(rebindings, env.rebindings)

	// Step 3: pop the latest rebinding matching env, if any.
	popped, newEnvGetter, matched, err := popLatest(current, env)
	if err != nil {
		return nil, err
	}
	defer popped.decRef()

	lookupEnv := env
	if matched {
		lookupEnv, err = newEnvGetter.GetEnv()
		if err != nil {
			return nil, err
		}
		defer lookupEnv.decRef()
	}

	var own, filtered, transitive, fromParent []Entity

	// releaseAccum releases every entity share accumulated so far, for use
	// on any error path below: an error aborts the whole lookup, and none
	// of the partial results already built are handed back to the caller
	// to release themselves.
	releaseAccum := func() {
		ReleaseEntities(own)
		ReleaseEntities(filtered)
		ReleaseEntities(transitive)
		ReleaseEntities(fromParent)
	}

	// Step 4: own entries, reversed so the newest Add wins within the
	// bucket, decorated with lookupEnv's default metadata and the popped
	// rebindings.
	if bucket := lookupEnv.ownMap[key]; len(bucket) > 0 {
		own = make([]Entity, 0, len(bucket))
		for i := len(bucket) - 1; i >= 0; i-- {
			entry := bucket[i]
			popped.incRef()
			prelim := Entity{
				Element: entry.element,
				Info: EntityInfo{
					Metadata:   combineMetadata(entry.metadata, lookupEnv.defaultMD),
					Rebindings: popped,
				},
			}
			if entry.resolver != nil {
				resolved, rerr := entry.resolver(prelim)
				if rerr != nil {
					prelim.Release()
					releaseAccum()
					return nil, wrapResolverErr("entity resolver", rerr)
				}
				own = append(own, resolved)
				continue
			}
			own = append(own, prelim)
		}
	}

	// Step 5: filtered references, gated by reachability, only when
	// descending recursively. Walked off env (not lookupEnv): a rebinding
	// only redirects which env's own entries are visible, not its
	// reference structure.
	if recursive {
		for _, r := range env.referenced {
			if from != NoElement && !canReach(r.fromNode, from) {
				continue
			}
			child, rerr := r.resolver(ReferenceArgs{FromNode: r.fromNode, Info: NoEntityInfo})
			if rerr != nil {
				releaseAccum()
				return nil, wrapResolverErr("referenced env resolver", rerr)
			}
			sub, gerr := get(child, key, from, canReach, false, popped)
			child.decRef()
			if gerr != nil {
				releaseAccum()
				return nil, gerr
			}
			filtered = append(filtered, sub...)
		}
	}

	// Step 6: transitive references, never gated by reachability.
	for _, t := range env.transitive {
		sub, gerr := get(t, key, from, canReach, false, popped)
		if gerr != nil {
			releaseAccum()
			return nil, gerr
		}
		transitive = append(transitive, sub...)
	}

	// Step 7: parent, only when descending recursively.
	if recursive {
		parentEnv, perr := env.parent.GetEnv()
		if perr != nil {
			releaseAccum()
			return nil, perr
		}
		sub, gerr := get(parentEnv, key, from, canReach, true, popped)
		parentEnv.decRef()
		if gerr != nil {
			releaseAccum()
			return nil, gerr
		}
		fromParent = append(fromParent, sub...)
	}

	// Step 8: concatenate in the fixed, observable order.
	total := len(own) + len(filtered) + len(transitive) + len(fromParent)
	if total == 0 {
		return nil, nil
	}
	result = make([]Entity, 0, total)
	result = append(result, own...)
	result = append(result, filtered...)
	result = append(result, transitive...)
	result = append(result, fromParent...)

	// Step 9: reachability filter over the whole concatenation.
	if from != NoElement {
		kept := result[:0]
		for _, e := range result {
			if canReach(e.Element, from) {
				kept = append(kept, e)
			} else {
				e.Release()
			}
		}
		result = kept
	}

	return result, nil
}
