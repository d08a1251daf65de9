package emvqr

import "fmt"

// Merchant is the static profile a terminal's QR codes are generated
// from. GatewayMerchantID is the tag 26 value exactly as the gateway hands
// it out; when it is empty, Account is encoded instead.
type Merchant struct {
	GatewayMerchantID string           `json:"gateway_merchant_id" yaml:"gateway_merchant_id" mapstructure:"gateway_merchant_id"`
	Account           *MerchantAccount `json:"account,omitempty" yaml:"account,omitempty" mapstructure:"account"`
	TerminalID        string           `json:"terminal_id" yaml:"terminal_id" mapstructure:"terminal_id"`
	Name              string           `json:"merchant_name" yaml:"merchant_name" mapstructure:"merchant_name"`
	City              string           `json:"merchant_city" yaml:"merchant_city" mapstructure:"merchant_city"`
	CountryCode       string           `json:"country_code" yaml:"country_code" mapstructure:"country_code"`
	CurrencyCode      string           `json:"currency_code" yaml:"currency_code" mapstructure:"currency_code"`
	CategoryCode      string           `json:"category_code" yaml:"category_code" mapstructure:"category_code"`
}

// MerchantAccount is the structured form of the tag 26 template.
type MerchantAccount struct {
	GloballyUniqueID string `json:"globally_unique_id" yaml:"globally_unique_id" mapstructure:"globally_unique_id"`
	MerchantCode     string `json:"merchant_code,omitempty" yaml:"merchant_code,omitempty" mapstructure:"merchant_code"`
	ShortCode        string `json:"short_code,omitempty" yaml:"short_code,omitempty" mapstructure:"short_code"`
}

// Encode builds the nested tag 26 value: sub-tag 00 (reverse-domain
// identifier), then 07 and 09 when set.
func (a MerchantAccount) Encode() (string, error) {
	checks := []struct {
		field string
		value string
		rules []ValidationRule
	}{
		{"account.globally_unique_id", a.GloballyUniqueID, []ValidationRule{&RequiredRule{}, &PrintableRule{}}},
		{"account.merchant_code", a.MerchantCode, []ValidationRule{&NumericRule{}}},
		{"account.short_code", a.ShortCode, []ValidationRule{&NumericRule{}}},
	}
	for _, c := range checks {
		if rule, err := runRules(c.value, c.rules); err != nil {
			return "", &ConfigurationError{Field: c.field, Rule: rule, Message: err.Error()}
		}
	}

	fields := []Field{{Tag: SubTagAccountGUID, Value: a.GloballyUniqueID}}
	if a.MerchantCode != "" {
		fields = append(fields, Field{Tag: SubTagMerchantCode, Value: a.MerchantCode})
	}
	if a.ShortCode != "" {
		fields = append(fields, Field{Tag: SubTagShortCode, Value: a.ShortCode})
	}

	value, err := FormatFields(fields...)
	if err != nil {
		return "", &ConfigurationError{Field: "account", Rule: "length", Message: err.Error()}
	}
	if len(value) > MaxValueLength {
		return "", &ConfigurationError{Field: "account", Rule: "length", Message: fmt.Sprintf("template is %d characters, maximum %d", len(value), MaxValueLength)}
	}
	return value, nil
}

// merchantField binds a set of rules to one value of a Merchant.
type merchantField struct {
	field string
	value func(Merchant) string
	rules []ValidationRule
}

// merchantFields is compiled once; rules are stateless.
var merchantFields = []merchantField{
	{
		field: "terminal_id",
		value: func(m Merchant) string { return m.TerminalID },
		rules: []ValidationRule{&RequiredRule{}, &PrintableRule{}, &LengthRule{MaxLength: MaxTerminalIDLength}},
	},
	{
		field: "merchant_name",
		value: func(m Merchant) string { return SanitizeText(m.Name) },
		rules: []ValidationRule{&RequiredRule{}},
	},
	{
		field: "merchant_city",
		value: func(m Merchant) string { return SanitizeText(m.City) },
		rules: []ValidationRule{&RequiredRule{}, &LengthRule{MaxLength: MaxValueLength}},
	},
	{
		field: "country_code",
		value: func(m Merchant) string { return m.CountryCode },
		rules: []ValidationRule{&RequiredRule{}, &LengthRule{ExactLength: 2}, &AlphaRule{}},
	},
	{
		field: "currency_code",
		value: func(m Merchant) string { return m.CurrencyCode },
		rules: []ValidationRule{&RequiredRule{}, &LengthRule{ExactLength: 3}, &NumericRule{}},
	},
	{
		field: "category_code",
		value: func(m Merchant) string { return m.CategoryCode },
		rules: []ValidationRule{&RequiredRule{}, &LengthRule{ExactLength: 4}, &NumericRule{}},
	},
}

// WithDefaults returns a copy of m with the country, currency and category
// codes filled in where they are empty.
func (m Merchant) WithDefaults() Merchant {
	if m.CountryCode == "" {
		m.CountryCode = DefaultCountryCode
	}
	if m.CurrencyCode == "" {
		m.CurrencyCode = DefaultCurrencyCode
	}
	if m.CategoryCode == "" {
		m.CategoryCode = DefaultCategoryCode
	}
	return m
}

// Validate checks every field of the profile and returns the first
// failure as a *ConfigurationError. Defaults are not applied.
func (m Merchant) Validate() error {
	if _, err := m.AccountInfo(); err != nil {
		return err
	}

	for _, f := range merchantFields {
		if rule, err := runRules(f.value(m), f.rules); err != nil {
			return &ConfigurationError{Field: f.field, Rule: rule, Message: err.Error()}
		}
	}
	return nil
}

// AccountInfo resolves the tag 26 value.
func (m Merchant) AccountInfo() (string, error) {
	if m.GatewayMerchantID == "" {
		if m.Account == nil {
			return "", &ConfigurationError{Field: "gateway_merchant_id", Rule: "required", Message: "gateway merchant id or account is required"}
		}
		return m.Account.Encode()
	}

	rules := []ValidationRule{&PrintableRule{}, &LengthRule{MaxLength: MaxValueLength}}
	if rule, err := runRules(m.GatewayMerchantID, rules); err != nil {
		return "", &ConfigurationError{Field: "gateway_merchant_id", Rule: rule, Message: err.Error()}
	}
	return m.GatewayMerchantID, nil
}

func (m Merchant) String() string {
	return fmt.Sprintf("%s (%s, terminal %s)", m.Name, m.City, m.TerminalID)
}
