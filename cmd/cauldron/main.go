package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-cauldron/internal/config"
	"github.com/tdex-network/tdex-cauldron/internal/core/application"
	"github.com/urfave/cli/v2"
)

const dumpMetricsFlag = "dump-metrics"

// appConfig is set once a command builds the services.
var appConfig *application.Config

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "cauldron CLI"
	app.Usage = "Command line interface for trading against cauldron pools on BCH"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  dumpMetricsFlag,
			Usage: "print the collected metrics to stderr once the command is done",
		},
	}
	app.Before = initConfig
	app.After = func(ctx *cli.Context) error {
		if !ctx.Bool(dumpMetricsFlag) {
			return nil
		}
		return dumpMetrics(os.Stderr, appConfig)
	}
	app.Commands = append(
		app.Commands,
		&configCommand,
		&pools,
		&impact,
		&unspents,
		&listwebhooks,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func initConfig(_ *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	return nil
}

func getAppConfig() (*application.Config, error) {
	cfg := &application.Config{
		IndexerType:              config.GetString(config.IndexerTypeKey),
		IndexerURL:               config.GetString(config.IndexerURLKey),
		RostrumURL:               config.GetString(config.RostrumURLKey),
		IndexerTimeout:           config.GetDuration(config.IndexerTimeoutKey),
		IndexerRequestsPerSecond: config.GetInt(config.IndexerRequestsPerSecondKey),
		PoolCacheTTL:             config.GetDuration(config.PoolCacheTTLKey),
		WebhookEndpoints:         config.GetWebhookEndpoints(),
		WebhookSecret:            config.GetString(config.WebhookSecretKey),
		FeeReserve:               config.GetFeeReserve(),
		TxFeePerByte:             config.GetTxFeePerByte(),
		BurnDustTokens:           config.GetBool(config.BurnDustTokensKey),
		MetricsRegistry:          prometheus.NewRegistry(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	appConfig = cfg
	return cfg, nil
}

// dumpMetrics is a no-op for commands that never built the services.
func dumpMetrics(w io.Writer, cfg *application.Config) error {
	if cfg == nil {
		return nil
	}
	return cfg.Metrics().Dump(w)
}

func printJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}
	fmt.Println(string(jsonBytes))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[cauldron] %v\n", err)
	}
	os.Exit(1)
}
