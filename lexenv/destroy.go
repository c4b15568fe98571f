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

// Destroy releases env's owned resources. A primary env owns its ownMap
// and that map is torn down; a derived env leaves ownMap alone since it
// never owns one (it's either nil or an alias of a primary's). Both
// regimes release their transitive references and rebindings, and release
// the parent getter's share. Destroy on EmptyEnv is a no-op.
//
// Destroy is normally reached only through DecRef hitting zero; a primary
// env is instead destroyed directly by its owning analysis unit (there is
// no refcount transition to drive it).
func Destroy(env *LexicalEnv) {
	if env == nil || env.IsEmpty() {
		return
	}
	if env.IsPrimary() {
		for k := range env.ownMap {
			delete(env.ownMap, k)
		}
		env.ownMap = nil
	}
	env.referenced = nil
	for _, t := range env.transitive {
		t.decRef()
	}
	env.transitive = nil
	env.rebindings.decRef()
	env.rebindings = nil
	env.parent.DecRef()
	env.parent = EnvGetter{}
}

func (env *LexicalEnv) destroy() { Destroy(env) }
