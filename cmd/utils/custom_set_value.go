package utils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/duckdrop/spl-airdrop-backend/internal/crashtracker"
	"github.com/duckdrop/spl-airdrop-backend/internal/ledger"
	"github.com/duckdrop/spl-airdrop-backend/internal/monitor"
	"github.com/duckdrop/spl-airdrop-backend/internal/services"
	"github.com/duckdrop/spl-airdrop-backend/internal/utils"
)

func SetConfigOptionMetricType(co *config.ConfigOption) error {
	metricType := viper.GetString(co.Name)

	metricTypeParsed, err := monitor.ParseMetricType(metricType)
	if err != nil {
		return fmt.Errorf("couldn't parse metric type: %w", err)
	}

	*(co.ConfigKey.(*monitor.MetricType)) = metricTypeParsed
	return nil
}

func SetConfigOptionCrashTrackerType(co *config.ConfigOption) error {
	ctType := viper.GetString(co.Name)

	ctTypeParsed, err := crashtracker.ParseCrashTrackerType(ctType)
	if err != nil {
		return fmt.Errorf("couldn't parse crash tracker type: %w", err)
	}

	*(co.ConfigKey.(*crashtracker.CrashTrackerType)) = ctTypeParsed
	return nil
}

func SetConfigOptionLogLevel(co *config.ConfigOption) error {
	// parse string to logLevel object
	logLevelStr := viper.GetString(co.Name)
	logLevel, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		return fmt.Errorf("couldn't parse log level: %w", err)
	}

	// update the configKey
	key, ok := co.ConfigKey.(*logrus.Level)
	if !ok {
		return fmt.Errorf("configKey has an invalid type %T", co.ConfigKey)
	}
	*key = logLevel

	// Log for debugging
	if config.IsExplicitlySet(co) {
		log.Debugf("Setting log level to: %q", logLevel)
		log.DefaultLogger.SetLevel(*key)
	} else {
		log.Debugf("Using default log level: %q", logLevel)
	}
	return nil
}

// SetConfigOptionSolanaPrivateKey accepts the JSON byte array written by `solana-keygen` or a base58 encoded key.
func SetConfigOptionSolanaPrivateKey(co *config.ConfigOption) error {
	privateKeyStr := viper.GetString(co.Name)

	privateKey, err := ledger.ParsePrivateKey(privateKeyStr)
	if err != nil {
		// the key itself is never echoed back
		return fmt.Errorf("error validating private key in %s: %w", co.Name, err)
	}

	key, ok := co.ConfigKey.(*solana.PrivateKey)
	if !ok {
		return fmt.Errorf("the expected type for this config key is a solana.PrivateKey, but got a %T instead", co.ConfigKey)
	}
	*key = privateKey

	return nil
}

func SetConfigOptionSolanaPublicKey(co *config.ConfigOption) error {
	publicKeyStr := viper.GetString(co.Name)

	publicKey, err := ledger.ParseWalletAddress(publicKeyStr)
	if err != nil {
		return fmt.Errorf("error validating public key %q: %w", utils.TruncateString(publicKeyStr, 4), err)
	}

	key, ok := co.ConfigKey.(*solana.PublicKey)
	if !ok {
		return fmt.Errorf("the expected type for this config key is a solana.PublicKey, but got a %T instead", co.ConfigKey)
	}
	*key = publicKey

	return nil
}

func SetConfigOptionURLString(co *config.ConfigOption) error {
	u := strings.TrimSpace(viper.GetString(co.Name))

	if u == "" {
		return fmt.Errorf("%s cannot be empty", co.Name)
	}

	parsedURL, err := url.ParseRequestURI(u)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", co.Name, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s must use the http or https scheme, got %q", co.Name, parsedURL.Scheme)
	}
	if !govalidator.IsURL(u) {
		return fmt.Errorf("%s is not a valid URL: %q", co.Name, u)
	}

	key, ok := co.ConfigKey.(*string)
	if !ok {
		return fmt.Errorf("the expected type for this config key is a string, but got a %T instead", co.ConfigKey)
	}
	*key = u

	return nil
}

func SetConfigOptionTokenDecimals(co *config.ConfigOption) error {
	decimals := viper.GetInt(co.Name)

	if decimals < 0 || decimals > services.MaxTokenDecimals {
		return fmt.Errorf("%s must be between 0 and %d, got %d", co.Name, services.MaxTokenDecimals, decimals)
	}

	key, ok := co.ConfigKey.(*int)
	if !ok {
		return fmt.Errorf("the expected type for this config key is an int, but got a %T instead", co.ConfigKey)
	}
	*key = decimals

	return nil
}

// SetConfigOptionDecimalAmount parses a positive amount in whole token units, e.g. "25000" or "0.5".
func SetConfigOptionDecimalAmount(co *config.ConfigOption) error {
	amountStr := strings.TrimSpace(viper.GetString(co.Name))

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("error parsing %s %q: %w", co.Name, amountStr, err)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%s must be positive, got %s", co.Name, amount)
	}

	key, ok := co.ConfigKey.(*decimal.Decimal)
	if !ok {
		return fmt.Errorf("the expected type for this config key is a decimal.Decimal, but got a %T instead", co.ConfigKey)
	}
	*key = amount

	return nil
}
