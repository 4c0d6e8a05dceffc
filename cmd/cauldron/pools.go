package main

import (
	"context"
	"encoding/hex"
	"sync"

	"github.com/tdex-network/tdex-cauldron/internal/config"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const (
	ratePrecision = 12
	bchPrecision  = 8
)

var pools = cli.Command{
	Name:  "pools",
	Usage: "list the active pools and the weighted average rate of tokens",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:     "token",
			Usage:    "the id of the token, can be repeated",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "bypass the pool cache",
		},
	},
	Action: poolsAction,
}

type poolInfo struct {
	Outpoint    string `json:"outpoint"`
	OwnerPKH    string `json:"owner_pkh"`
	Sats        string `json:"sats"`
	BCH         string `json:"bch"`
	TokenAmount string `json:"token_amount"`
}

type tokenPoolsInfo struct {
	TokenID string     `json:"token_id"`
	Pools   []poolInfo `json:"pools"`
	// Rate is the weighted average amount of sats per token unit.
	Rate string `json:"rate,omitempty"`
}

func poolsAction(ctx *cli.Context) error {
	tokenIDs := ctx.StringSlice("token")
	noCache := ctx.Bool("no-cache") || config.GetBool(config.NoCacheKey)

	cfg, err := getAppConfig()
	if err != nil {
		return err
	}
	poolSvc, err := cfg.PoolService()
	if err != nil {
		return err
	}

	lock := &sync.Mutex{}
	infoByToken := make(map[string]tokenPoolsInfo, len(tokenIDs))

	eg, egCtx := errgroup.WithContext(context.Background())
	for i := range tokenIDs {
		tokenID := tokenIDs[i]
		eg.Go(func() error {
			tokenPools, err := poolSvc.GetActivePools(egCtx, tokenID, noCache)
			if err != nil {
				return err
			}
			info := newTokenPoolsInfo(tokenID, tokenPools)

			lock.Lock()
			infoByToken[tokenID] = info
			lock.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	resp := make([]tokenPoolsInfo, 0, len(tokenIDs))
	for _, tokenID := range tokenIDs {
		resp = append(resp, infoByToken[tokenID])
	}
	printJSON(resp)
	return nil
}

func newTokenPoolsInfo(tokenID string, tokenPools []domain.Pool) tokenPoolsInfo {
	info := tokenPoolsInfo{
		TokenID: tokenID,
		Pools:   make([]poolInfo, 0, len(tokenPools)),
	}
	for _, p := range tokenPools {
		info.Pools = append(info.Pools, poolInfo{
			Outpoint:    p.Outpoint.String(),
			OwnerPKH:    hex.EncodeToString(p.Parameters.WithdrawPubKeyHash),
			Sats:        p.Amount.String(),
			BCH:         mathutil.SatsToDecimal(p.Amount, bchPrecision).String(),
			TokenAmount: p.TokenAmount.String(),
		})
	}
	if rate, err := domain.WeightedAverageRate(tokenPools); err == nil {
		info.Rate = mathutil.RatToDecimal(rate, ratePrecision).String()
	}
	return info
}
