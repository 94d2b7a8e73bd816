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
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package api

import (
	"github.com/blinklabs-io/agora/ledger"
)

// ApiNode is the interface the API server uses to interact with the
// hosting node. It keeps the API decoupled from the node implementation
// for testing.
type ApiNode interface {
	// CurrentHeight returns the current block height
	CurrentHeight() uint64
	// AdvanceHeight increments the block height clock and returns the
	// new height
	AdvanceHeight() uint64
	// Ledger returns the governance ledger core
	Ledger() *ledger.Ledger
}
