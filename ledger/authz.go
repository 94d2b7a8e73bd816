// Copyright 2026 Blink Labs Software
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

package ledger

// AuthorizationGuard is the stateless policy check shared by every
// owner-gated operation. The owner is fixed at deployment; operations
// that accept a secondary authorized identity (the treasury's
// designated governance contract) pass it per call, since it is
// mutable ledger state.
type AuthorizationGuard struct {
	owner AccountID
}

func NewAuthorizationGuard(owner AccountID) AuthorizationGuard {
	return AuthorizationGuard{owner: owner}
}

// IsOwner reports whether the caller is the configured owner
func (g AuthorizationGuard) IsOwner(caller AccountID) bool {
	return caller == g.owner
}

// IsAuthorized reports whether the caller is the configured owner or
// the given secondary identity. An empty secondary identity means none
// has been designated and never matches.
func (g AuthorizationGuard) IsAuthorized(
	caller AccountID,
	secondary AccountID,
) bool {
	if caller == g.owner {
		return true
	}
	return secondary != "" && caller == secondary
}
