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

package models

// SpendingRecord is one entry in the treasury's append-only spending
// ledger. Records are created only by the normal withdraw path and are
// never updated or deleted.
type SpendingRecord struct {
	ID         uint64 `gorm:"primarykey;autoIncrement:false"`
	Recipient  string `gorm:"size:128;not null"`
	Amount     uint64 `gorm:"not null"`
	Reason     string `gorm:"size:256;not null"`
	Height     uint64 `gorm:"not null"`
	ApprovedBy string `gorm:"size:128;not null"`
}

// TableName returns the table name
func (SpendingRecord) TableName() string {
	return "spending_record"
}
