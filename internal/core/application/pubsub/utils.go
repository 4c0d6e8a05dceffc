package pubsub

import (
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
)

func getProposalPayload(proposal *domain.TradeProposal) map[string]interface{} {
	entries := make([]map[string]interface{}, 0, len(proposal.Entries))
	for _, e := range proposal.Entries {
		entries = append(entries, map[string]interface{}{
			"pool":            e.Pool.Outpoint.String(),
			"supply_token_id": e.SupplyTokenID,
			"demand_token_id": e.DemandTokenID,
			"supply":          e.Supply.String(),
			"demand":          e.Demand.String(),
		})
	}
	return map[string]interface{}{
		"supply_token_id": proposal.SupplyTokenID,
		"demand_token_id": proposal.DemandTokenID,
		"price_impact":    proposal.PriceImpact,
		"entries":         entries,
	}
}
