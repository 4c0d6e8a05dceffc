package main

import (
	"github.com/tdex-network/tdex-cauldron/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-cauldron/internal/core/ports"
	"github.com/urfave/cli/v2"
)

var listwebhooks = cli.Command{
	Name:  "listwebhooks",
	Usage: "list the webhooks configured via CAULDRON_WEBHOOK_ENDPOINTS",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "event",
			Usage: "the event to filter hooks by",
			Value: ports.AnyTopic,
		},
	},
	Action: listWebhooksAction,
}

type webhookInfo struct {
	Id        string `json:"id"`
	Event     string `json:"event"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"is_secured"`
}

func listWebhooksAction(ctx *cli.Context) error {
	event := ctx.String("event")
	if !pubsub.IsValidEvent(event) {
		return &invalidUsageError{ctx, "listwebhooks"}
	}

	cfg, err := getAppConfig()
	if err != nil {
		return err
	}
	pubsubSvc, err := cfg.PubSubService()
	if err != nil {
		return err
	}

	printJSON(newWebhooksInfo(pubsubSvc.ListWebhooks(event)))
	return nil
}

func newWebhooksInfo(subs []ports.Subscription) []webhookInfo {
	hooks := make([]webhookInfo, 0, len(subs))
	for _, s := range subs {
		hooks = append(hooks, webhookInfo{
			Id:        s.Id(),
			Event:     s.Topic(),
			Endpoint:  s.NotifyAt(),
			IsSecured: s.IsSecured(),
		})
	}
	return hooks
}
