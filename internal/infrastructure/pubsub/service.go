// Package pubsub implements a ports.PubSub delivering messages to webhooks
// with a POST request.
package pubsub

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
	"github.com/tdex-network/tdex-cauldron/pkg/circuitbreaker"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRequestTimeout = 15 * time.Second
	tokenExpiration       = 5 * time.Minute
)

type service struct {
	store      *store
	httpClient *client
	cb         *gobreaker.CircuitBreaker
}

// NewService returns a webhook pubsub. A zero requestTimeout means the
// default one.
func NewService(requestTimeout time.Duration) (ports.PubSub, error) {
	if requestTimeout < 0 {
		return nil, fmt.Errorf("webhook request timeout must not be negative")
	}
	if requestTimeout == 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &service{
		store:      newStore(),
		httpClient: newHTTPClient(requestTimeout),
		cb:         circuitbreaker.NewCircuitBreaker("webhook"),
	}, nil
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	return ws.store.add(*sub), nil
}

func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return ws.listSubscriptionsForTopic(topic).toPortable()
}

func (ws *service) Publish(topic string, message string) error {
	return ws.publishForTopic(topic, message)
}

func (ws *service) listSubscriptionsForTopic(topic string) subscriptions {
	if topic == ports.UnspecifiedTopic {
		return ws.store.getForTopic(topic, true)
	}

	subs := ws.store.getForTopic(topic, false)
	if topic != ports.AnyTopic {
		subs = append(subs, ws.store.getForTopic(ports.AnyTopic, false)...)
	}
	return subs
}

func (ws *service) publishForTopic(topic, message string) error {
	subs := ws.listSubscriptionsForTopic(topic)

	ctx := context.Background()
	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error {
			if err := ws.doRequest(ctx, sub, message); err != nil {
				log.WithError(err).Warnf(
					"failed to notify webhook %s for topic %s", sub.ID, topic,
				)
				return err
			}
			return nil
		})
	}
	return eg.Wait()
}

func (ws *service) doRequest(
	ctx context.Context, sub Subscription, payload string,
) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if sub.IsSecured() {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
				Subject:   sub.Event,
				IssuedAt:  time.Now().Unix(),
				ExpiresAt: time.Now().Add(tokenExpiration).Unix(),
			})
			tokenString, err := token.SignedString([]byte(sub.Secret))
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.httpClient.post(ctx, sub.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("webhook replied with status %d: %s", status, resp)
		}
		return nil, nil
	})

	return err
}
