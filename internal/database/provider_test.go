// provider_test.go
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

package database_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/localnerve/easyform-api/internal/config"
	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	database.Store
	closed int
}

func (s *countingStore) Close(context.Context) error {
	s.closed++
	return nil
}

func TestProviderPerRequestClosesOnEveryPath(t *testing.T) {
	var opened []*countingStore
	open := func(context.Context) (database.Store, error) {
		s := &countingStore{}
		opened = append(opened, s)
		return s, nil
	}
	p := database.NewProvider(open, config.ConnectionModePerRequest, 0, nil)
	ctx := context.Background()

	require.NoError(t, p.WithStore(ctx, func(context.Context, database.Store) error { return nil }))

	boom := errors.New("boom")
	assert.ErrorIs(t, p.WithStore(ctx, func(context.Context, database.Store) error { return boom }), boom)

	assert.Panics(t, func() {
		_ = p.WithStore(ctx, func(context.Context, database.Store) error { panic("mid-operation") })
	})

	require.Len(t, opened, 3)
	for _, s := range opened {
		assert.Equal(t, 1, s.closed)
	}
}

func TestProviderSharedReusesAndRetriesFailedOpen(t *testing.T) {
	calls := 0
	store := &countingStore{}
	open := func(context.Context) (database.Store, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection refused")
		}
		return store, nil
	}
	p := database.NewProvider(open, config.ConnectionModeShared, 0, nil)
	ctx := context.Background()

	err := p.WithStore(ctx, func(context.Context, database.Store) error { return nil })
	ce, ok := types.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, ce.Code)
	assert.Contains(t, ce.Message, "connection refused")

	for i := 0; i < 3; i++ {
		require.NoError(t, p.WithStore(ctx, func(_ context.Context, s database.Store) error {
			assert.Same(t, store, s)
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, store.closed)

	require.NoError(t, p.Close(ctx))
	assert.Equal(t, 1, store.closed)
}

func TestProviderAppliesTimeout(t *testing.T) {
	p := database.NewProvider(func(context.Context) (database.Store, error) { return &countingStore{}, nil },
		config.ConnectionModeShared, time.Second, nil)

	require.NoError(t, p.WithStore(context.Background(), func(ctx context.Context, _ database.Store) error {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
		return nil
	}))
}

func TestStaticProviderHandsOutStore(t *testing.T) {
	store := &countingStore{}
	p := database.NewStaticProvider(store)

	require.NoError(t, p.WithStore(context.Background(), func(_ context.Context, s database.Store) error {
		assert.Same(t, store, s)
		return nil
	}))
	assert.Equal(t, config.ConnectionModeShared, p.Mode())
}
