package utils

import (
	"go/types"

	"github.com/stellar/go-stellar-sdk/support/config"

	"github.com/duckdrop/spl-airdrop-backend/internal/crashtracker"
	"github.com/duckdrop/spl-airdrop-backend/internal/monitor"
	"github.com/duckdrop/spl-airdrop-backend/internal/serve"
)

const DefaultRPCURL = "https://api.mainnet-beta.solana.com"

// AirdropConfigOptions returns the config options describing the distributor wallet, the token and the amount paid
// per claim.
func AirdropConfigOptions(opts *serve.ServeOptions) []*config.ConfigOption {
	return []*config.ConfigOption{
		{
			Name:           "wallet-private-key",
			Usage:          "The distributor wallet secret key, either the JSON byte array written by solana-keygen or a base58 string. It signs and pays for every airdrop.",
			OptType:        types.String,
			CustomSetValue: SetConfigOptionSolanaPrivateKey,
			ConfigKey:      &opts.DistributorKey,
			Required:       true,
		},
		{
			Name:           "token-mint-address",
			Usage:          "The base58 address of the SPL token mint being distributed.",
			OptType:        types.String,
			CustomSetValue: SetConfigOptionSolanaPublicKey,
			ConfigKey:      &opts.TokenMint,
			Required:       true,
		},
		{
			Name:           "rpc-url",
			Usage:          "The Solana JSON-RPC endpoint used to submit and confirm transactions.",
			OptType:        types.String,
			CustomSetValue: SetConfigOptionURLString,
			ConfigKey:      &opts.RPCURL,
			FlagDefault:    DefaultRPCURL,
			Required:       true,
		},
		{
			Name:           "token-decimals",
			Usage:          "The number of decimals of the token mint.",
			OptType:        types.Int,
			CustomSetValue: SetConfigOptionTokenDecimals,
			ConfigKey:      &opts.TokenDecimals,
			FlagDefault:    6,
			Required:       true,
		},
		{
			Name:           "airdrop-amount",
			Usage:          "The amount of tokens, in whole units, sent to each wallet.",
			OptType:        types.String,
			CustomSetValue: SetConfigOptionDecimalAmount,
			ConfigKey:      &opts.AirdropAmount,
			FlagDefault:    "25000",
			Required:       true,
		},
		{
			Name:        "token-symbol",
			Usage:       "The token symbol shown in the success message.",
			OptType:     types.String,
			ConfigKey:   &opts.TokenSymbol,
			FlagDefault: "DUCK",
			Required:    true,
		},
	}
}

func CrashTrackerTypeConfigOption(targetPointer *crashtracker.CrashTrackerType) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "crash-tracker-type",
		Usage:          `Crash tracker type. Options: "SENTRY", "DRY_RUN"`,
		OptType:        types.String,
		CustomSetValue: SetConfigOptionCrashTrackerType,
		ConfigKey:      targetPointer,
		FlagDefault:    string(crashtracker.CrashTrackerTypeDryRun),
		Required:       true,
	}
}

// MetricsConfigOptions returns the options of the standalone metrics server.
func MetricsConfigOptions(opts *serve.MetricsServeOptions) []*config.ConfigOption {
	return []*config.ConfigOption{
		{
			Name:           "metrics-type",
			Usage:          `Metric monitor type. Options: "PROMETHEUS"`,
			OptType:        types.String,
			CustomSetValue: SetConfigOptionMetricType,
			ConfigKey:      &opts.MetricType,
			FlagDefault:    string(monitor.MetricTypePrometheus),
			Required:       true,
		},
		{
			Name:        "metrics-port",
			Usage:       "Port where the metrics server will be listening on",
			OptType:     types.Int,
			ConfigKey:   &opts.Port,
			FlagDefault: 8002,
			Required:    true,
		},
	}
}
