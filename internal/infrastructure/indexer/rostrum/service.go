// Package rostrumindexer implements a ports.PoolIndexer on top of the cauldron
// contract index of Rostrum electrum servers.
package rostrumindexer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
	"github.com/tdex-network/tdex-cauldron/pkg/electrum"
	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
)

const (
	subscribeMethod   = "cauldron.contract.subscribe"
	unsubscribeMethod = "cauldron.contract.unsubscribe"

	// Contract type of cauldron constant product pools in the Rostrum index.
	cauldronContractType = 2
)

type service struct {
	url     string
	timeout time.Duration
}

// NewService returns a pool indexer that opens a websocket connection with
// the given Rostrum server for every lookup.
func NewService(serverURL string, timeout time.Duration) (ports.PoolIndexer, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid rostrum url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("rostrum url must have ws or wss scheme")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("rostrum timeout must be positive")
	}
	return &service{serverURL, timeout}, nil
}

func (s *service) GetActivePools(
	ctx context.Context, tokenID string,
) ([]ports.PoolRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := electrum.Dial(ctx, s.url, s.timeout)
	if err != nil {
		return nil, err
	}
	//nolint
	defer client.Close()

	resp := contractSubscribeResponse{}
	if err := client.Call(
		ctx, subscribeMethod, &resp, cauldronContractType, tokenID,
	); err != nil {
		return nil, err
	}
	if err := client.Call(
		ctx, unsubscribeMethod, nil, cauldronContractType, tokenID,
	); err != nil {
		log.WithError(err).Debug("failed to unsubscribe from cauldron contract")
	}

	return parseContractUtxos(tokenID, resp.Utxos)
}

type contractSubscribeResponse struct {
	Type  string         `json:"type"`
	Utxos []contractUtxo `json:"utxos"`
}

type contractUtxo struct {
	IsWithdrawn   bool        `json:"is_withdrawn"`
	NewUtxoHash   string      `json:"new_utxo_hash"`
	NewUtxoN      uint32      `json:"new_utxo_n"`
	NewUtxoTxID   string      `json:"new_utxo_txid"`
	PKH           string      `json:"pkh"`
	Sats          json.Number `json:"sats"`
	SpentUtxoHash string      `json:"spent_utxo_hash"`
	TokenAmount   json.Number `json:"token_amount"`
	TokenID       string      `json:"token_id"`
}

func parseContractUtxos(
	tokenID string, utxos []contractUtxo,
) ([]ports.PoolRecord, error) {
	records := make([]ports.PoolRecord, 0, len(utxos))
	for _, u := range utxos {
		if u.IsWithdrawn || u.TokenID != tokenID {
			continue
		}
		sats, err := mathutil.ParseNonNegativeInteger(u.Sats.String())
		if err != nil {
			return nil, fmt.Errorf(
				"pool %s:%d sats: %w", u.NewUtxoTxID, u.NewUtxoN, err,
			)
		}
		tokens, err := mathutil.ParseNonNegativeInteger(u.TokenAmount.String())
		if err != nil {
			return nil, fmt.Errorf(
				"pool %s:%d token amount: %w", u.NewUtxoTxID, u.NewUtxoN, err,
			)
		}

		records = append(records, ports.PoolRecord{
			OwnerPKH: u.PKH,
			Sats:     sats,
			TokenID:  u.TokenID,
			Tokens:   tokens,
			TxPos:    u.NewUtxoN,
			TxID:     u.NewUtxoTxID,
		})
	}

	log.Debugf(
		"rostrum reported %d utxos, %d active pools for token %s",
		len(utxos), len(records), tokenID,
	)
	return records, nil
}
