// Package cauldronindexer implements a ports.PoolIndexer on top of the REST
// api of the cauldron indexer.
package cauldronindexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
	"github.com/tdex-network/tdex-cauldron/pkg/circuitbreaker"
	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
	"go.uber.org/ratelimit"
)

const (
	// DefaultURL is the public cauldron indexer.
	DefaultURL = "https://indexer.cauldron.quest"

	activePoolsPath = "/cauldron/pool/active/"
)

type service struct {
	baseURL string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// NewService returns a pool indexer querying the given base url. At most
// requestsPerSecond requests are made.
func NewService(
	baseURL string, timeout time.Duration, requestsPerSecond int,
) (ports.PoolIndexer, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid indexer url: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("indexer timeout must be positive")
	}
	if requestsPerSecond <= 0 {
		return nil, fmt.Errorf("indexer requests per second must be positive")
	}

	return &service{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		cb:      circuitbreaker.NewCircuitBreaker("cauldron-indexer"),
		limiter: ratelimit.New(requestsPerSecond),
	}, nil
}

func (s *service) GetActivePools(
	ctx context.Context, tokenID string,
) ([]ports.PoolRecord, error) {
	s.limiter.Take()

	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.getActivePools(ctx, tokenID)
	})
	if err != nil {
		return nil, err
	}
	return res.([]ports.PoolRecord), nil
}

func (s *service) getActivePools(
	ctx context.Context, tokenID string,
) ([]ports.PoolRecord, error) {
	query := url.Values{}
	query.Set("token", tokenID)
	endpoint := fmt.Sprintf("%s%s?%s", s.baseURL, activePoolsPath, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// No pool ever created for the token.
	if resp.StatusCode == http.StatusNotFound {
		log.Debugf("indexer knows no pool for token %s", tokenID)
		return []ports.PoolRecord{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"indexer replied with status %d: %s", resp.StatusCode, string(body),
		)
	}

	return parseActivePools(body)
}

type activePoolsResponse struct {
	Active []activePool `json:"active"`
}

type activePool struct {
	OwnerP2PKHAddr string      `json:"owner_p2pkh_addr"`
	OwnerPKH       string      `json:"owner_pkh"`
	Sats           json.Number `json:"sats"`
	TokenID        string      `json:"token_id"`
	Tokens         json.Number `json:"tokens"`
	TxPos          json.Number `json:"tx_pos"`
	TxID           string      `json:"txid"`
}

func parseActivePools(body []byte) ([]ports.PoolRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	resp := activePoolsResponse{}
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode indexer response: %w", err)
	}

	records := make([]ports.PoolRecord, 0, len(resp.Active))
	for _, p := range resp.Active {
		sats, err := mathutil.ParseNonNegativeInteger(p.Sats.String())
		if err != nil {
			return nil, fmt.Errorf("pool %s:%s sats: %w", p.TxID, p.TxPos, err)
		}
		tokens, err := mathutil.ParseNonNegativeInteger(p.Tokens.String())
		if err != nil {
			return nil, fmt.Errorf("pool %s:%s tokens: %w", p.TxID, p.TxPos, err)
		}
		txPos, err := strconv.ParseUint(p.TxPos.String(), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("pool %s: invalid tx_pos %s", p.TxID, p.TxPos)
		}

		records = append(records, ports.PoolRecord{
			OwnerP2PKHAddr: p.OwnerP2PKHAddr,
			OwnerPKH:       p.OwnerPKH,
			Sats:           sats,
			TokenID:        p.TokenID,
			Tokens:         tokens,
			TxPos:          uint32(txPos),
			TxID:           p.TxID,
		})
	}
	return records, nil
}
