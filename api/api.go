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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// ApiConfig describes the API server configuration
type ApiConfig struct {
	ListenAddress string
}

// Api is the governance REST API server.
type Api struct {
	config     ApiConfig
	logger     *slog.Logger
	node       ApiNode
	httpServer *http.Server
	mu         sync.Mutex
}

// New creates a new API server instance.
func New(
	cfg ApiConfig,
	node ApiNode,
	logger *slog.Logger,
) *Api {
	if logger == nil {
		logger = slog.New(
			slog.NewJSONHandler(io.Discard, nil),
		)
	}
	logger = logger.With("component", "api")
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":8080"
	}
	return &Api{
		config: cfg,
		logger: logger,
		node:   node,
	}
}

// Start starts the HTTP server in a background goroutine.
func (a *Api) Start(
	ctx context.Context,
) error {
	a.mu.Lock()
	if a.httpServer != nil {
		a.mu.Unlock()
		return errors.New("server already started")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", a.handleRoot)
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /v1/tip", a.handleTip)
	mux.HandleFunc(
		"POST /v1/governance/proposals",
		a.handleCreateProposal,
	)
	mux.HandleFunc(
		"GET /v1/governance/proposals/{id}",
		a.handleGetProposal,
	)
	mux.HandleFunc(
		"GET /v1/governance/proposals/{id}/votes",
		a.handleGetProposalVotes,
	)
	mux.HandleFunc(
		"POST /v1/governance/proposals/{id}/votes",
		a.handleCastVote,
	)
	mux.HandleFunc(
		"GET /v1/governance/proposals/{id}/voters/{account}",
		a.handleGetVote,
	)
	mux.HandleFunc(
		"POST /v1/governance/proposals/{id}/finalize",
		a.handleFinalizeProposal,
	)
	mux.HandleFunc(
		"POST /v1/governance/vote-token-contract",
		a.handleSetVoteTokenContract,
	)
	mux.HandleFunc(
		"GET /v1/treasury",
		a.handleGetTreasury,
	)
	mux.HandleFunc(
		"POST /v1/treasury/deposits",
		a.handleDeposit,
	)
	mux.HandleFunc(
		"POST /v1/treasury/withdrawals",
		a.handleWithdraw,
	)
	mux.HandleFunc(
		"POST /v1/treasury/emergency-withdrawals",
		a.handleEmergencyWithdraw,
	)
	mux.HandleFunc(
		"GET /v1/treasury/spending-records/{id}",
		a.handleGetSpendingRecord,
	)
	mux.HandleFunc(
		"POST /v1/treasury/governance-contract",
		a.handleSetGovernanceContract,
	)
	mux.HandleFunc(
		"GET /v1/token",
		a.handleGetToken,
	)
	mux.HandleFunc(
		"GET /v1/token/balances/{account}",
		a.handleGetTokenBalance,
	)
	mux.HandleFunc(
		"POST /v1/token/mints",
		a.handleMint,
	)
	mux.HandleFunc(
		"POST /v1/token/burns",
		a.handleBurn,
	)
	mux.HandleFunc(
		"POST /v1/token/transfers",
		a.handleTransfer,
	)
	mux.HandleFunc(
		"POST /v1/token/uri",
		a.handleSetTokenURI,
	)

	server := &http.Server{
		Addr:              a.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 60 * time.Second,
	}
	a.httpServer = server
	a.mu.Unlock()

	// Start the server with deterministic error detection
	if err := a.startServer(server); err != nil {
		a.mu.Lock()
		a.httpServer = nil
		a.mu.Unlock()
		return err
	}

	a.logger.Info(
		"governance API listener started on " +
			a.config.ListenAddress,
	)

	// Monitor context for cancellation
	go func() {
		<-ctx.Done()
		a.mu.Lock()
		srv := a.httpServer
		a.httpServer = nil
		a.mu.Unlock()

		if srv != nil {
			a.logger.Debug(
				"context cancelled, shutting down " +
					"governance API server",
			)
			//nolint:contextcheck
			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				30*time.Second,
			)
			defer cancel()
			//nolint:contextcheck
			if err := srv.Shutdown(
				shutdownCtx,
			); err != nil {
				a.logger.Error(
					"failed to shutdown governance "+
						"API server on context "+
						"cancellation",
					"error", err,
				)
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (a *Api) Stop(
	ctx context.Context,
) error {
	a.mu.Lock()
	srv := a.httpServer
	a.httpServer = nil
	a.mu.Unlock()

	if srv != nil {
		a.logger.Debug(
			"shutting down governance API server",
		)
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf(
				"failed to shutdown governance API "+
					"server: %w",
				err,
			)
		}
	}
	return nil
}

// startServer starts the HTTP server with deterministic
// error detection. It binds the listening socket first so
// port conflicts are detected immediately, then serves in
// a background goroutine.
func (a *Api) startServer(
	server *http.Server,
) error {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf(
			"failed to listen for governance API "+
				"server: %w",
			err,
		)
	}
	go func() {
		if err := server.Serve(ln); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(
				"governance API server error",
				"error", err,
			)
		}
	}()
	return nil
}
