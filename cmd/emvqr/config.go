package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/aayushgelal/emvqr"
)

// merchantKeys are bound to EMVQR_* environment variables so a profile can
// be given, or overridden, without a file.
var merchantKeys = []string{
	"gateway_merchant_id",
	"account.globally_unique_id",
	"account.merchant_code",
	"account.short_code",
	"terminal_id",
	"merchant_name",
	"merchant_city",
	"country_code",
	"currency_code",
	"category_code",
}

// loadMerchant reads a merchant profile from path (YAML or JSON, by
// extension) with environment overrides. path may be empty. Every value
// must be a string in the file: an unquoted YAML terminal_id such as
// 0706714577 is read as a number and would lose its leading zero.
func loadMerchant(path string) (emvqr.Merchant, error) {
	v := viper.New()
	v.SetEnvPrefix("EMVQR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range merchantKeys {
		if err := v.BindEnv(key); err != nil {
			return emvqr.Merchant{}, err
		}
	}

	v.SetDefault("country_code", emvqr.DefaultCountryCode)
	v.SetDefault("currency_code", emvqr.DefaultCurrencyCode)
	v.SetDefault("category_code", emvqr.DefaultCategoryCode)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return emvqr.Merchant{}, fmt.Errorf("failed to read merchant config %s: %w", path, err)
		}
	}

	for _, key := range merchantKeys {
		if value := v.Get(key); value != nil {
			if _, ok := value.(string); !ok {
				return emvqr.Merchant{}, &emvqr.ConfigurationError{
					Field:   key,
					Rule:    "string",
					Message: fmt.Sprintf("got %T, quote the value", value),
				}
			}
		}
	}

	var m emvqr.Merchant
	if err := v.Unmarshal(&m); err != nil {
		return emvqr.Merchant{}, fmt.Errorf("failed to decode merchant config: %w", err)
	}
	return m, nil
}
