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

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ledgerMetrics struct {
	proposalCount        prometheus.Gauge
	votesCastTotal       prometheus.Counter
	proposalsFinalized   *prometheus.CounterVec
	treasuryBalance      prometheus.Gauge
	treasuryDeposits     prometheus.Counter
	treasuryWithdrawals  prometheus.Counter
	tokenSupply          prometheus.Gauge
	tokenMintedTotal     prometheus.Counter
	tokenBurnedTotal     prometheus.Counter
	tokenTransfersTotal  prometheus.Counter
}

func (m *ledgerMetrics) init(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	m.proposalCount = promautoFactory.NewGauge(prometheus.GaugeOpts{
		Name: "agora_governance_proposal_count",
		Help: "total number of proposals created",
	})
	m.votesCastTotal = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "agora_governance_votes_cast_total",
		Help: "total number of votes cast",
	})
	m.proposalsFinalized = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_governance_proposals_finalized_total",
			Help: "total number of proposals finalized by outcome",
		},
		[]string{"status"},
	)
	m.treasuryBalance = promautoFactory.NewGauge(prometheus.GaugeOpts{
		Name: "agora_treasury_balance",
		Help: "current pooled treasury balance",
	})
	m.treasuryDeposits = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "agora_treasury_deposits_total",
		Help: "total amount deposited into the treasury",
	})
	m.treasuryWithdrawals = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "agora_treasury_withdrawals_total",
		Help: "total amount withdrawn through the audited path",
	})
	m.tokenSupply = promautoFactory.NewGauge(prometheus.GaugeOpts{
		Name: "agora_token_total_supply",
		Help: "current governance token total supply",
	})
	m.tokenMintedTotal = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "agora_token_minted_total",
		Help: "total amount of governance tokens minted",
	})
	m.tokenBurnedTotal = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "agora_token_burned_total",
		Help: "total amount of governance tokens burned",
	})
	m.tokenTransfersTotal = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "agora_token_transfers_total",
		Help: "total number of governance token transfers",
	})
}
