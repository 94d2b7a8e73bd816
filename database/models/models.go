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

// Package models contains the gorm models for the metadata store. Each
// keyed table from the governance core (proposals, votes, spending
// records, token balances) gets its own model, and the scalar ledger
// variables live in singleton state rows.
package models

// MigrateModels is the list of models to auto-migrate on store startup
var MigrateModels = []any{
	&Proposal{},
	&Vote{},
	&SpendingRecord{},
	&TokenBalance{},
	&GovernanceState{},
	&TreasuryState{},
	&TokenState{},
}
