// Package electrumwallet implements a single-key ports.Wallet whose coins are
// tracked by an Electrum Cash server.
package electrumwallet

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
	"github.com/tdex-network/tdex-cauldron/pkg/electrum"
	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
	"github.com/tdex-network/tdex-cauldron/pkg/wallet"
)

const (
	listUnspentMethod = "blockchain.scripthash.listunspent"
	broadcastMethod   = "blockchain.transaction.broadcast"

	// Asks the server to return both token-less and token coins.
	includeTokensFilter = "include_tokens"
)

// Service is a ports.Wallet holding one private key.
type Service struct {
	name          string
	key           *btcec.PrivateKey
	lockingScript []byte
	scriptHash    string
	client        *electrum.Client
}

// NewService connects to the given electrum server and returns a wallet for
// the given key.
func NewService(
	ctx context.Context, name string, key *btcec.PrivateKey,
	serverURL string, timeout time.Duration,
) (*Service, error) {
	if name == "" {
		return nil, fmt.Errorf("missing wallet name")
	}
	if key == nil {
		return nil, fmt.Errorf("missing wallet key")
	}
	lockingScript, err := wallet.P2PKHLockingScript(key)
	if err != nil {
		return nil, err
	}

	client, err := electrum.Dial(ctx, serverURL, timeout)
	if err != nil {
		return nil, err
	}

	return &Service{
		name:          name,
		key:           key,
		lockingScript: lockingScript,
		scriptHash:    wallet.ScriptHash(lockingScript),
		client:        client,
	}, nil
}

// compile-time check
var _ ports.Wallet = (*Service)(nil)

func (s *Service) Name() string {
	return s.name
}

func (s *Service) LockingScript() ([]byte, error) {
	return append([]byte{}, s.lockingScript...), nil
}

func (s *Service) PrivateKey() *btcec.PrivateKey {
	return s.key
}

func (s *Service) ListUnspents(ctx context.Context) ([]domain.Unspent, error) {
	utxos := make([]listUnspentItem, 0)
	if err := s.client.Call(
		ctx, listUnspentMethod, &utxos, s.scriptHash, includeTokensFilter,
	); err != nil {
		return nil, fmt.Errorf("failed to list unspents of wallet %s: %w", s.name, err)
	}

	unspents := make([]domain.Unspent, 0, len(utxos))
	for _, u := range utxos {
		unspent, err := u.toDomain()
		if err != nil {
			return nil, err
		}
		unspents = append(unspents, *unspent)
	}

	log.Debugf("wallet %s has %d unspents", s.name, len(unspents))
	return unspents, nil
}

func (s *Service) SubmitTransaction(
	ctx context.Context, txBin []byte,
) (string, error) {
	var txid string
	if err := s.client.Call(
		ctx, broadcastMethod, &txid, hex.EncodeToString(txBin),
	); err != nil {
		return "", err
	}
	return txid, nil
}

// Close terminates the connection with the electrum server.
func (s *Service) Close() error {
	return s.client.Close()
}

type listUnspentItem struct {
	Height    int64       `json:"height"`
	TxHash    string      `json:"tx_hash"`
	TxPos     uint32      `json:"tx_pos"`
	Value     json.Number `json:"value"`
	TokenData *tokenData  `json:"token_data"`
}

type tokenData struct {
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	NFT      *struct {
		Capability string `json:"capability"`
		Commitment string `json:"commitment"`
	} `json:"nft"`
}

func (u listUnspentItem) toDomain() (*domain.Unspent, error) {
	outpoint, err := domain.NewOutpoint(u.TxHash, u.TxPos)
	if err != nil {
		return nil, err
	}
	value, err := mathutil.ParseNonNegativeInteger(u.Value.String())
	if err != nil {
		return nil, fmt.Errorf("unspent %s value: %w", outpoint, err)
	}

	unspent := &domain.Unspent{Outpoint: outpoint, Amount: value}
	if u.TokenData == nil {
		return unspent, nil
	}

	tokenAmount := mathutil.Zero()
	if u.TokenData.Amount != "" {
		tokenAmount, err = mathutil.ParseNonNegativeInteger(u.TokenData.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("unspent %s token amount: %w", outpoint, err)
		}
	}
	token := &domain.TokenPayload{
		TokenID: u.TokenData.Category,
		Amount:  tokenAmount,
	}
	if nft := u.TokenData.NFT; nft != nil {
		token.Capability = nft.Capability
		commitment, err := hex.DecodeString(nft.Commitment)
		if err != nil {
			return nil, fmt.Errorf("unspent %s nft commitment: %w", outpoint, err)
		}
		token.Commitment = commitment
	}
	unspent.Token = token
	return unspent, nil
}
