// provider.go
//
// A Go service for the easyform form-building API
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of easyform-api.
// easyform-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// easyform-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with easyform-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/localnerve/easyform-api/internal/config"
	"github.com/localnerve/easyform-api/internal/types"
	"go.uber.org/zap"
)

// Provider hands out store handles to request scopes.
//
// In shared mode one handle is opened lazily and reused until Close; a failed
// open is not remembered, so the next request tries again. In per-request mode
// every scope opens its own handle and closes it on exit.
type Provider struct {
	open    Opener
	mode    string
	timeout time.Duration
	log     *zap.Logger

	mu     sync.Mutex
	shared Store
}

// NewProvider creates a provider over open
func NewProvider(open Opener, mode string, timeout time.Duration, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{open: open, mode: mode, timeout: timeout, log: log}
}

// NewProviderFromConfig wires the configured backend, mode and timeout
func NewProviderFromConfig(cfg *config.Config, log *zap.Logger) *Provider {
	return NewProvider(NewOpener(cfg, log), cfg.DBConnectionMode, cfg.DBTimeout, log)
}

// NewStaticProvider hands out store to every scope; Close closes it
func NewStaticProvider(store Store) *Provider {
	p := NewProvider(func(context.Context) (Store, error) { return store, nil }, config.ConnectionModeShared, 0, nil)
	p.shared = store
	return p
}

// Mode returns the connection mode
func (p *Provider) Mode() string {
	return p.mode
}

// WithStore runs fn with a store handle. The handle is released on every
// exit path, panics included. Open failures are returned as store errors.
func (p *Provider) WithStore(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if p.mode == config.ConnectionModePerRequest {
		store, err := p.open(ctx)
		if err != nil {
			return types.StoreError(fmt.Errorf("open store: %w", err))
		}
		defer func() {
			if err := store.Close(context.Background()); err != nil {
				p.log.Warn("failed to close store", zap.Error(err))
			}
		}()
		return fn(ctx, store)
	}

	store, err := p.sharedStore(ctx)
	if err != nil {
		return types.StoreError(fmt.Errorf("open store: %w", err))
	}
	return fn(ctx, store)
}

func (p *Provider) sharedStore(ctx context.Context) (Store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shared != nil {
		return p.shared, nil
	}
	store, err := p.open(ctx)
	if err != nil {
		return nil, err
	}
	p.log.Info("opened shared store")
	p.shared = store
	return store, nil
}

// Close releases the shared handle, if one was opened
func (p *Provider) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shared == nil {
		return nil
	}
	err := p.shared.Close(ctx)
	p.shared = nil
	return err
}
