package main

import (
	"fmt"
	"sort"

	"github.com/tdex-network/tdex-cauldron/internal/config"
	"github.com/urfave/cli/v2"
)

var configCommand = cli.Command{
	Name:   "config",
	Usage:  "Print the effective configuration, read from CAULDRON_* env vars",
	Action: configAction,
}

func configAction(_ *cli.Context) error {
	settings := config.AllSettings()

	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("%s: %v\n", key, settings[key])
	}
	return nil
}
