package main

import (
	"bytes"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-cauldron/internal/core/application"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
)

const tokenID = "b79bfc8246b5fc4707e7c7dedcb6619ef1ab91f494a790c20b0f4c422ed95b92"

func TestNewTokenPoolsInfo(t *testing.T) {
	tokenPools := []domain.Pool{
		newPool(t, 0, 1000, 500),
		newPool(t, 1, 2000, 1500),
	}

	info := newTokenPoolsInfo(tokenID, tokenPools)
	require.Equal(t, tokenID, info.TokenID)
	require.Len(t, info.Pools, 2)
	require.Equal(t, strings.Repeat("ab", 32)+":1", info.Pools[1].Outpoint)
	require.Equal(t, strings.Repeat("01", 20), info.Pools[0].OwnerPKH)
	require.Equal(t, "2000", info.Pools[1].Sats)
	require.Equal(t, "0.00002", info.Pools[1].BCH)
	require.Equal(t, "1500", info.Pools[1].TokenAmount)
	// (1000·500 + 2000·1500) / (500 + 1500)
	require.Equal(t, "1750", info.Rate)

	empty := newTokenPoolsInfo(tokenID, nil)
	require.Empty(t, empty.Pools)
	require.Empty(t, empty.Rate)
}

func TestParseEntries(t *testing.T) {
	tokenPools := []domain.Pool{
		newPool(t, 0, 1000, 500),
		newPool(t, 1, 2000, 1500),
	}
	txid := strings.Repeat("ab", 32)

	entries, err := parseEntries([]entryInfo{
		{txid, 1, domain.NativeTokenID, tokenID, "100", "70"},
	}, tokenPools)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, tokenPools[1].Outpoint, entries[0].Pool.Outpoint)
	require.Equal(t, "100", entries[0].Supply.String())
	require.Equal(t, "70", entries[0].Demand.String())

	tests := []struct {
		name  string
		entry entryInfo
	}{
		{"invalid_txid", entryInfo{"ab", 0, domain.NativeTokenID, tokenID, "1", "1"}},
		{"inactive_pool", entryInfo{txid, 7, domain.NativeTokenID, tokenID, "1", "1"}},
		{"negative_supply", entryInfo{txid, 0, domain.NativeTokenID, tokenID, "-1", "1"}},
		{"fractional_demand", entryInfo{txid, 0, domain.NativeTokenID, tokenID, "1", "0.5"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			entries, err := parseEntries([]entryInfo{tt.entry}, tokenPools)
			require.Error(t, err)
			require.Nil(t, entries)
		})
	}
}

func TestDumpMetrics(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, dumpMetrics(buf, nil))
	require.Empty(t, buf.String())

	cfg := newTestAppConfig(t)
	cfg.Metrics().ChainFailed()

	require.NoError(t, dumpMetrics(buf, cfg))
	require.Contains(t, buf.String(), "cauldron_trade_chain_failures_total")
	require.Contains(t, buf.String(), "cauldron_trade_transactions_broadcasted_total")
}

func TestNewWebhooksInfo(t *testing.T) {
	cfg := newTestAppConfig(t)
	pubsubSvc, err := cfg.PubSubService()
	require.NoError(t, err)

	hooks := newWebhooksInfo(pubsubSvc.ListWebhooks(ports.AnyTopic))
	require.Len(t, hooks, 1)
	require.NotEmpty(t, hooks[0].Id)
	require.Equal(t, ports.AnyTopic, hooks[0].Event)
	require.Equal(t, "http://localhost:9090/hook", hooks[0].Endpoint)
	require.True(t, hooks[0].IsSecured)

	require.Empty(t, newWebhooksInfo(nil))
}

func newTestAppConfig(t *testing.T) *application.Config {
	cfg := &application.Config{
		IndexerType:              application.IndexerREST,
		IndexerURL:               "http://localhost:8080",
		IndexerTimeout:           time.Second,
		IndexerRequestsPerSecond: 1,
		WebhookEndpoints:         []string{"http://localhost:9090/hook"},
		WebhookSecret:            "secret",
		MetricsRegistry:          prometheus.NewRegistry(),
		FeeReserve:               domain.DefaultFeeReserve,
		TxFeePerByte:             big.NewInt(1),
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func newPool(t *testing.T, index uint32, sats, tokens int64) domain.Pool {
	outpoint, err := domain.NewOutpoint(strings.Repeat("ab", 32), index)
	require.NoError(t, err)
	pool, err := domain.NewPool(
		outpoint, []byte(strings.Repeat("\x01", 20)), tokenID,
		big.NewInt(tokens), big.NewInt(sats),
	)
	require.NoError(t, err)
	return *pool
}
