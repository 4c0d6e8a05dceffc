package ports

// TradeMetrics records the outcome of trade operations.
type TradeMetrics interface {
	ProposalCreated(supplyTokenID, demandTokenID string)
	FundingFailed(reason string)
	TransactionsBroadcasted(count int)
	ChainFailed()
}
