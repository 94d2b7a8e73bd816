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

package agora

import (
	"testing"
	"time"

	"github.com/blinklabs-io/agora/ledger"
	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.NotNil(t, cfg.logger)
	assert.Empty(t, cfg.dataDir)
	assert.Empty(t, cfg.owner)
	assert.Empty(t, cfg.apiListenAddress)
	assert.False(t, cfg.tracing)
	assert.Equal(t, time.Duration(0), cfg.shutdownTimeout)
}

func TestWithOwner(t *testing.T) {
	cfg := &Config{}

	// Default should be zero value (empty string)
	assert.Equal(t, ledger.AccountID(""), cfg.owner)

	WithOwner("deployer")(cfg)
	assert.Equal(t, ledger.AccountID("deployer"), cfg.owner)
}

func TestWithApiListenAddress(t *testing.T) {
	cfg := NewConfig(
		WithApiListenAddress("localhost:9090"),
	)
	assert.Equal(t, "localhost:9090", cfg.apiListenAddress)
}

func TestWithShutdownTimeout(t *testing.T) {
	cfg := NewConfig(
		WithShutdownTimeout(5 * time.Second),
	)
	assert.Equal(t, 5*time.Second, cfg.shutdownTimeout)
}
