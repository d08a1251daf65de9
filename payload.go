package emvqr

import (
	"fmt"
	"log/slog"
)

// Encoder produces sealed EMV-QR payloads for one merchant. The profile is
// validated once by NewEncoder; an Encoder is immutable afterwards and safe
// for concurrent use.
type Encoder struct {
	merchant        Merchant
	accountInfo     string
	name            string
	city            string
	defaultRemarks  string
	additionalOrder []string
	logger          *slog.Logger
}

// NewEncoder applies merchant defaults, validates the profile and the
// options, and precomputes the fields that do not change per transaction.
func NewEncoder(m Merchant, opts ...EncoderOption) (*Encoder, error) {
	m = m.WithDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}

	accountInfo, err := m.AccountInfo()
	if err != nil {
		return nil, err
	}

	e := &Encoder{
		merchant:    m,
		accountInfo: accountInfo,
		// Names longer than a TLV value are cut, never rejected
		name:            truncate(SanitizeText(m.Name), MaxValueLength),
		city:            SanitizeText(m.City),
		defaultRemarks:  DefaultRemarks,
		additionalOrder: []string{SubTagTerminalID, SubTagBillNumber},
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.defaultRemarks == "" {
		return nil, &ConfigurationError{Field: "default_remarks", Rule: "required", Message: "default remarks are empty after sanitizing"}
	}
	if err := checkAdditionalOrder(e.additionalOrder); err != nil {
		return nil, err
	}
	// Static codes without remarks carry the default reference.
	if _, size := e.additionalFields(e.defaultRemarks); size > MaxValueLength {
		return nil, &ConfigurationError{
			Field:   "default_remarks",
			Rule:    "length",
			Message: fmt.Sprintf("additional data would be %d characters, maximum %d", size, MaxValueLength),
		}
	}

	return e, nil
}

// checkAdditionalOrder requires the order to name 07 and 01 exactly once.
func checkAdditionalOrder(order []string) error {
	seen := make(map[string]bool, len(order))
	for _, tag := range order {
		if tag != SubTagTerminalID && tag != SubTagBillNumber {
			return &ConfigurationError{Field: "additional_data_order", Rule: "sub_tags", Message: fmt.Sprintf("unsupported sub-tag %q", tag)}
		}
		if seen[tag] {
			return &ConfigurationError{Field: "additional_data_order", Rule: "sub_tags", Message: fmt.Sprintf("sub-tag %q listed twice", tag)}
		}
		seen[tag] = true
	}
	if len(seen) != 2 {
		return &ConfigurationError{Field: "additional_data_order", Rule: "sub_tags", Message: "order must list sub-tags 07 and 01"}
	}
	return nil
}

// Merchant returns the validated profile, with defaults applied.
func (e *Encoder) Merchant() Merchant {
	return e.merchant
}

// Encode builds and seals the payload for tx. Fields are written in the
// fixed order 00 01 26 52 53 [54] 58 59 60 62 63. Nothing is returned on
// error.
func (e *Encoder) Encode(tx Transaction) (string, error) {
	initiation := InitiationStatic
	var amount string
	if tx.Amount.Valid {
		formatted, err := FormatAmount(tx.Amount.Decimal)
		if err != nil {
			return "", err
		}
		amount = formatted
		initiation = InitiationDynamic
	}

	additional, err := e.additionalData(tx.Remarks)
	if err != nil {
		return "", err
	}

	payload, err := NewBuilder().
		Add(TagPayloadFormat, PayloadFormatIndicator).
		Add(TagPointOfInitiation, initiation).
		Add(TagMerchantAccount, e.accountInfo).
		Add(TagCategoryCode, e.merchant.CategoryCode).
		Add(TagCurrency, e.merchant.CurrencyCode).
		AddIf(tx.Amount.Valid, TagAmount, amount).
		Add(TagCountryCode, e.merchant.CountryCode).
		Add(TagMerchantName, e.name).
		Add(TagMerchantCity, e.city).
		AddGroup(TagAdditionalData, additional...).
		Seal()
	if err != nil {
		return "", err
	}

	if e.logger != nil {
		e.logger.Debug("encoded EMV-QR payload",
			slog.String("terminal_id", e.merchant.TerminalID),
			slog.String("initiation", initiation),
			slog.Int("length", len(payload)),
			slog.String("payload", payload),
		)
	}
	return payload, nil
}

// additionalData returns the tag 62 sub-fields in the configured order.
// Remarks that would push the template past 99 characters are rejected.
func (e *Encoder) additionalData(remarks string) ([]Field, error) {
	reference := SanitizeText(remarks)
	if reference == "" {
		reference = e.defaultRemarks
	}

	fields, size := e.additionalFields(reference)
	if size > MaxValueLength {
		return nil, &ValidationError{
			Field:   "remarks",
			Rule:    "length",
			Message: fmt.Sprintf("additional data would be %d characters, maximum %d", size, MaxValueLength),
		}
	}
	return fields, nil
}

// additionalFields lays out tag 62 for reference and reports its encoded
// size.
func (e *Encoder) additionalFields(reference string) ([]Field, int) {
	values := map[string]string{
		SubTagTerminalID: e.merchant.TerminalID,
		SubTagBillNumber: reference,
	}

	fields := make([]Field, 0, len(e.additionalOrder))
	size := 0
	for _, tag := range e.additionalOrder {
		f := Field{Tag: tag, Value: values[tag]}
		size += f.EncodedLen()
		fields = append(fields, f)
	}
	return fields, size
}

// BuildPayload is a one-shot NewEncoder + Encode.
func BuildPayload(m Merchant, tx Transaction, opts ...EncoderOption) (string, error) {
	e, err := NewEncoder(m, opts...)
	if err != nil {
		return "", err
	}
	return e.Encode(tx)
}
