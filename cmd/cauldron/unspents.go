package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/tdex-network/tdex-cauldron/internal/config"
	electrumwallet "github.com/tdex-network/tdex-cauldron/internal/infrastructure/electrum-wallet"
	"github.com/tdex-network/tdex-cauldron/pkg/wallet"
	"github.com/urfave/cli/v2"
)

var unspents = cli.Command{
	Name:  "unspents",
	Usage: "list the coins of a single key P2PKH wallet",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "key",
			Usage:    "the WIF or hex encoded private key of the wallet",
			EnvVars:  []string{"CAULDRON_WALLET_KEY"},
			Required: true,
		},
	},
	Action: unspentsAction,
}

type unspentInfo struct {
	Outpoint   string `json:"outpoint"`
	Amount     string `json:"amount"`
	TokenID    string `json:"token_id,omitempty"`
	Tokens     string `json:"tokens,omitempty"`
	Capability string `json:"capability,omitempty"`
	Commitment string `json:"commitment,omitempty"`
}

func unspentsAction(ctx *cli.Context) error {
	key, err := wallet.PrivateKeyFromString(ctx.String("key"))
	if err != nil {
		return err
	}

	w, err := electrumwallet.NewService(
		context.Background(), "main", key,
		config.GetString(config.ElectrumURLKey),
		config.GetDuration(config.IndexerTimeoutKey),
	)
	if err != nil {
		return fmt.Errorf("unable to connect to electrum server: %w", err)
	}
	//nolint
	defer w.Close()

	list, err := w.ListUnspents(context.Background())
	if err != nil {
		return err
	}

	resp := make([]unspentInfo, 0, len(list))
	for _, u := range list {
		info := unspentInfo{
			Outpoint: u.Outpoint.String(),
			Amount:   u.Amount.String(),
		}
		if u.Token != nil {
			info.TokenID = u.Token.TokenID
			info.Tokens = u.TokenAmount().String()
			info.Capability = u.Token.Capability
			info.Commitment = hex.EncodeToString(u.Token.Commitment)
		}
		resp = append(resp, info)
	}
	printJSON(resp)
	return nil
}
