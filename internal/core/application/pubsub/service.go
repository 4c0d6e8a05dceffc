package pubsub

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
)

const (
	EventTradeBroadcasted = "TRADE_BROADCASTED"
	EventTradeChainFailed = "TRADE_CHAIN_FAILED"
)

var events = map[string]struct{}{
	EventTradeBroadcasted: {},
	EventTradeChainFailed: {},
	ports.AnyTopic:        {},
}

type Service struct {
	pubsub ports.PubSub
}

func NewService(pubsub ports.PubSub) (*Service, error) {
	if pubsub == nil {
		return nil, fmt.Errorf("missing pubsub")
	}
	return &Service{pubsub}, nil
}

// IsValidEvent returns whether webhooks can be registered for the given
// event.
func IsValidEvent(event string) bool {
	_, ok := events[event]
	return ok
}

func (s *Service) AddWebhook(event, endpoint, secret string) (string, error) {
	if !IsValidEvent(event) {
		return "", fmt.Errorf("invalid webhook event type %q", event)
	}
	return s.pubsub.Subscribe(event, endpoint, secret)
}

func (s *Service) ListWebhooks(event string) []ports.Subscription {
	return s.pubsub.ListSubscriptionsForTopic(event)
}

func (s *Service) PublishTradeBroadcastedEvent(
	walletName string, txids []string, proposal *domain.TradeProposal,
) error {
	event := EventTradeBroadcasted
	payload := map[string]interface{}{
		"event":  event,
		"wallet": walletName,
		"txids":  txids,
		"date":   time.Now().UTC().Format(time.RFC3339),
	}
	if proposal != nil {
		payload["trade"] = getProposalPayload(proposal)
	}
	message, _ := json.Marshal(payload)
	return s.pubsub.Publish(event, string(message))
}

func (s *Service) PublishTradeChainFailedEvent(
	walletName string, broadcasted []string, failedIndex int, reason error,
) error {
	event := EventTradeChainFailed
	payload := map[string]interface{}{
		"event":        event,
		"wallet":       walletName,
		"broadcasted":  broadcasted,
		"failed_index": failedIndex,
		"reason":       reason.Error(),
		"date":         time.Now().UTC().Format(time.RFC3339),
	}
	message, _ := json.Marshal(payload)
	return s.pubsub.Publish(event, string(message))
}
