package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tdex-network/tdex-cauldron/internal/config"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	"github.com/tdex-network/tdex-cauldron/pkg/mathutil"
	"github.com/urfave/cli/v2"
)

var impact = cli.Command{
	Name:  "impact",
	Usage: "compute the price impact of a list of trade entries against the active pools of a token",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "token",
			Usage:    "the id of the token traded against BCH",
			Required: true,
		},
		&cli.StringFlag{
			Name: "entries",
			Usage: "path of a JSON file with the list of entries, ie. " +
				`[{"txid":"..","index":0,"supply_token":"BCH","demand_token":"..","supply":"1000","demand":"50"}]`,
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "bypass the pool cache",
		},
	},
	Action: impactAction,
}

type entryInfo struct {
	TxID        string `json:"txid"`
	Index       uint32 `json:"index"`
	SupplyToken string `json:"supply_token"`
	DemandToken string `json:"demand_token"`
	Supply      string `json:"supply"`
	Demand      string `json:"demand"`
}

func impactAction(ctx *cli.Context) error {
	tokenID := ctx.String("token")
	noCache := ctx.Bool("no-cache") || config.GetBool(config.NoCacheKey)

	buf, err := os.ReadFile(ctx.String("entries"))
	if err != nil {
		return err
	}
	rawEntries := make([]entryInfo, 0)
	if err := json.Unmarshal(buf, &rawEntries); err != nil {
		return fmt.Errorf("invalid entries file: %w", err)
	}
	if len(rawEntries) <= 0 {
		return &invalidUsageError{ctx, "impact"}
	}

	cfg, err := getAppConfig()
	if err != nil {
		return err
	}
	poolSvc, err := cfg.PoolService()
	if err != nil {
		return err
	}
	tokenPools, err := poolSvc.GetActivePools(
		context.Background(), tokenID, noCache,
	)
	if err != nil {
		return err
	}

	entries, err := parseEntries(rawEntries, tokenPools)
	if err != nil {
		return err
	}

	priceImpact, err := domain.PriceImpact(tokenPools, entries)
	if err != nil {
		return err
	}

	printJSON(map[string]interface{}{
		"token_id":     tokenID,
		"pools":        len(tokenPools),
		"entries":      len(entries),
		"price_impact": priceImpact,
	})
	return nil
}

func parseEntries(
	rawEntries []entryInfo, tokenPools []domain.Pool,
) ([]domain.TradeEntry, error) {
	poolsByOutpoint := make(map[domain.Outpoint]domain.Pool, len(tokenPools))
	for _, p := range tokenPools {
		poolsByOutpoint[p.Outpoint] = p
	}

	entries := make([]domain.TradeEntry, 0, len(rawEntries))
	for i, e := range rawEntries {
		outpoint, err := domain.NewOutpoint(e.TxID, e.Index)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		pool, ok := poolsByOutpoint[outpoint]
		if !ok {
			return nil, fmt.Errorf("entry %d: pool %s is not active", i, outpoint)
		}
		supply, err := mathutil.ParseNonNegativeInteger(e.Supply)
		if err != nil {
			return nil, fmt.Errorf("entry %d supply: %w", i, err)
		}
		demand, err := mathutil.ParseNonNegativeInteger(e.Demand)
		if err != nil {
			return nil, fmt.Errorf("entry %d demand: %w", i, err)
		}

		entries = append(entries, domain.TradeEntry{
			Pool:          pool,
			SupplyTokenID: e.SupplyToken,
			DemandTokenID: e.DemandToken,
			Supply:        supply,
			Demand:        demand,
		})
	}
	return entries, nil
}
