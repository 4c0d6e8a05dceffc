package config

import (
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/tdex-network/tdex-cauldron/internal/core/domain"
	cauldronindexer "github.com/tdex-network/tdex-cauldron/internal/infrastructure/indexer/cauldron"
)

const (
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey is the BCH network, either mainnet or chipnet
	NetworkKey = "NETWORK"
	// IndexerTypeKey selects the pool indexer, either rest or rostrum
	IndexerTypeKey = "INDEXER_TYPE"
	// IndexerURLKey is the base url of the cauldron REST indexer
	IndexerURLKey = "INDEXER_URL"
	// RostrumURLKey is the websocket url of the Rostrum server used as indexer
	RostrumURLKey = "ROSTRUM_URL"
	// ElectrumURLKey is the websocket url of the electrum server tracking the
	// wallet coins
	ElectrumURLKey = "ELECTRUM_URL"
	// IndexerTimeoutKey is the timeout of every indexer request
	IndexerTimeoutKey = "INDEXER_TIMEOUT"
	// IndexerRequestsPerSecondKey caps the rate of requests to the REST indexer
	IndexerRequestsPerSecondKey = "INDEXER_REQUESTS_PER_SECOND"
	// PoolCacheTTLKey is for how long fetched pools are reused
	PoolCacheTTLKey = "POOL_CACHE_TTL"
	// NoCacheKey forces every lookup to hit the indexer
	NoCacheKey = "NO_CACHE"
	// TxFeePerByteKey is the sats per byte rate paid by trade transactions
	TxFeePerByteKey = "TX_FEE_PER_BYTE"
	// BurnDustTokensKey enables burning token change worth less than the dust
	// threshold
	BurnDustTokensKey = "BURN_DUST_TOKENS"
	// FeeReservePerEntryKey is the sats reserved for fees for every trade entry
	FeeReservePerEntryKey = "FEE_RESERVE_PER_ENTRY"
	// FeeReserveBaseKey is the fixed amount of sats reserved for fees
	FeeReserveBaseKey = "FEE_RESERVE_BASE"
	// WebhookEndpointsKey is a comma separated list of urls notified of trade
	// events
	WebhookEndpointsKey = "WEBHOOK_ENDPOINTS"
	// WebhookSecretKey is the secret used to sign webhook bearer tokens
	WebhookSecretKey = "WEBHOOK_SECRET"

	NetworkMainnet = "mainnet"
	NetworkChipnet = "chipnet"

	IndexerTypeREST    = "rest"
	IndexerTypeRostrum = "rostrum"

	defaultRostrumURL  = "wss://rostrum.cauldron.quest:50004"
	defaultElectrumURL = "wss://electrum.imaginary.cash:50004"
)

var vip *viper.Viper

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("CAULDRON")
	vip.AutomaticEnv()

	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(NetworkKey, NetworkMainnet)
	vip.SetDefault(IndexerTypeKey, IndexerTypeREST)
	vip.SetDefault(IndexerURLKey, cauldronindexer.DefaultURL)
	vip.SetDefault(RostrumURLKey, defaultRostrumURL)
	vip.SetDefault(ElectrumURLKey, defaultElectrumURL)
	vip.SetDefault(IndexerTimeoutKey, 15*time.Second)
	vip.SetDefault(IndexerRequestsPerSecondKey, 5)
	vip.SetDefault(PoolCacheTTLKey, 10*time.Second)
	vip.SetDefault(NoCacheKey, false)
	vip.SetDefault(TxFeePerByteKey, "1")
	vip.SetDefault(BurnDustTokensKey, false)
	vip.SetDefault(FeeReservePerEntryKey, domain.DefaultFeeReserve.PerEntry)
	vip.SetDefault(FeeReserveBaseKey, domain.DefaultFeeReserve.Base)
	vip.SetDefault(WebhookEndpointsKey, "")
	vip.SetDefault(WebhookSecretKey, "")

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetInt64(key string) int64 {
	return vip.GetInt64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetTxFeePerByte returns the configured fee rate, validated at init.
func GetTxFeePerByte() *big.Int {
	rate, _ := parseFeeRate(GetString(TxFeePerByteKey))
	return rate
}

// GetFeeReserve returns the configured fee reserve.
func GetFeeReserve() domain.FeeReserve {
	return domain.FeeReserve{
		PerEntry: GetInt64(FeeReservePerEntryKey),
		Base:     GetInt64(FeeReserveBaseKey),
	}
}

// GetWebhookEndpoints returns the list of configured webhook urls.
func GetWebhookEndpoints() []string {
	endpoints := make([]string, 0)
	for _, e := range strings.Split(GetString(WebhookEndpointsKey), ",") {
		if e = strings.TrimSpace(e); e != "" {
			endpoints = append(endpoints, e)
		}
	}
	return endpoints
}

// AllSettings returns the effective value of every key.
func AllSettings() map[string]interface{} {
	keys := []string{
		LogLevelKey, NetworkKey, IndexerTypeKey, IndexerURLKey, RostrumURLKey,
		ElectrumURLKey, IndexerTimeoutKey, IndexerRequestsPerSecondKey,
		PoolCacheTTLKey, NoCacheKey, TxFeePerByteKey, BurnDustTokensKey,
		FeeReservePerEntryKey, FeeReserveBaseKey, WebhookEndpointsKey,
	}
	settings := make(map[string]interface{}, len(keys)+1)
	for _, key := range keys {
		settings[key] = vip.Get(key)
	}
	if GetString(WebhookSecretKey) != "" {
		settings[WebhookSecretKey] = "********"
	}
	return settings
}

func validate() error {
	logLevel := GetInt(LogLevelKey)
	if logLevel < 0 || logLevel > 6 {
		return fmt.Errorf("%s must be in range [0, 6]", LogLevelKey)
	}

	network := GetString(NetworkKey)
	if network != NetworkMainnet && network != NetworkChipnet {
		return fmt.Errorf(
			"%s must be either %s or %s", NetworkKey, NetworkMainnet, NetworkChipnet,
		)
	}

	switch GetString(IndexerTypeKey) {
	case IndexerTypeREST:
		if _, err := url.ParseRequestURI(GetString(IndexerURLKey)); err != nil {
			return fmt.Errorf("invalid %s: %s", IndexerURLKey, err)
		}
		if GetInt(IndexerRequestsPerSecondKey) <= 0 {
			return fmt.Errorf("%s must be positive", IndexerRequestsPerSecondKey)
		}
	case IndexerTypeRostrum:
		if err := validateWebsocketURL(GetString(RostrumURLKey)); err != nil {
			return fmt.Errorf("invalid %s: %s", RostrumURLKey, err)
		}
	default:
		return fmt.Errorf(
			"%s must be either %s or %s",
			IndexerTypeKey, IndexerTypeREST, IndexerTypeRostrum,
		)
	}

	if err := validateWebsocketURL(GetString(ElectrumURLKey)); err != nil {
		return fmt.Errorf("invalid %s: %s", ElectrumURLKey, err)
	}

	if GetDuration(IndexerTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be positive", IndexerTimeoutKey)
	}
	if GetDuration(PoolCacheTTLKey) < 0 {
		return fmt.Errorf("%s must not be negative", PoolCacheTTLKey)
	}

	if _, err := parseFeeRate(GetString(TxFeePerByteKey)); err != nil {
		return err
	}

	if err := GetFeeReserve().Validate(); err != nil {
		return err
	}

	for _, endpoint := range GetWebhookEndpoints() {
		if _, err := url.ParseRequestURI(endpoint); err != nil {
			return fmt.Errorf("invalid webhook endpoint %s", endpoint)
		}
	}

	return nil
}

func parseFeeRate(str string) (*big.Int, error) {
	rate, err := decimal.NewFromString(str)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", TxFeePerByteKey, err)
	}
	if !rate.IsInteger() || !rate.IsPositive() {
		return nil, fmt.Errorf("%s must be a positive integer", TxFeePerByteKey)
	}
	return rate.BigInt(), nil
}

func validateWebsocketURL(str string) error {
	u, err := url.Parse(str)
	if err != nil {
		return err
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("scheme must be ws or wss")
	}
	return nil
}
