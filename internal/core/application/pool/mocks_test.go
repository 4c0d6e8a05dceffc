package pool_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
)

// **** Indexer ****

type mockIndexer struct {
	mock.Mock
}

func (m *mockIndexer) GetActivePools(
	ctx context.Context, tokenID string,
) ([]ports.PoolRecord, error) {
	args := m.Called(ctx, tokenID)

	var res []ports.PoolRecord
	if a := args.Get(0); a != nil {
		res = a.([]ports.PoolRecord)
	}
	return res, args.Error(1)
}

// **** Cache ****

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(tokenID string) ([]ports.PoolRecord, bool) {
	args := m.Called(tokenID)

	var res []ports.PoolRecord
	if a := args.Get(0); a != nil {
		res = a.([]ports.PoolRecord)
	}
	return res, args.Bool(1)
}

func (m *mockCache) Set(tokenID string, records []ports.PoolRecord, ttl time.Duration) {
	m.Called(tokenID, records, ttl)
}

func (m *mockCache) Invalidate(tokenID string) {
	m.Called(tokenID)
}
