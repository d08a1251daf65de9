package emvqr

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// Payload is a decoded, checksum-verified EMV-QR string.
type Payload struct {
	raw        string
	fields     []Field
	additional []Field
}

// Decode verifies the CRC of payload and splits it into fields. The
// additional data template (tag 62) is parsed eagerly. The merchant
// account template (tag 26) is gateway-issued and kept opaque; AccountInfo
// parses it on demand.
func Decode(payload string) (*Payload, error) {
	if err := VerifyCRC(payload); err != nil {
		return nil, err
	}

	fields, err := ParseFields(payload)
	if err != nil {
		return nil, err
	}

	if fields[0].Tag != TagPayloadFormat || fields[0].Value != PayloadFormatIndicator {
		return nil, fmt.Errorf("%w: must start with %s%02d%s", ErrInvalidPayload, TagPayloadFormat, len(PayloadFormatIndicator), PayloadFormatIndicator)
	}

	for i, f := range fields {
		if f.Tag == TagCRC && i != len(fields)-1 {
			return nil, fmt.Errorf("%w: CRC field at position %d is not last", ErrInvalidPayload, i)
		}
	}
	if last := fields[len(fields)-1]; last.Tag != TagCRC || len(last.Value) != 4 {
		return nil, fmt.Errorf("%w: payload does not end with a CRC field", ErrInvalidPayload)
	}

	if f, ok := FindField(fields, TagPointOfInitiation); ok && f.Value != InitiationStatic && f.Value != InitiationDynamic {
		return nil, fmt.Errorf("%w: point of initiation %q", ErrInvalidPayload, f.Value)
	}

	p := &Payload{raw: payload, fields: fields}
	if f, ok := FindField(fields, TagAdditionalData); ok {
		if p.additional, err = ParseFields(f.Value); err != nil {
			return nil, fmt.Errorf("additional data: %w", err)
		}
	}
	return p, nil
}

// Fields returns a copy of the top-level fields in payload order.
func (p *Payload) Fields() []Field {
	return append([]Field(nil), p.fields...)
}

// Get returns the value of the first top-level field with tag.
func (p *Payload) Get(tag string) (string, bool) {
	f, ok := FindField(p.fields, tag)
	return f.Value, ok
}

// IsDynamic reports whether the point of initiation marks a one-shot code.
func (p *Payload) IsDynamic() bool {
	v, _ := p.Get(TagPointOfInitiation)
	return v == InitiationDynamic
}

// Amount parses tag 54. The result is null when the tag is absent.
func (p *Payload) Amount() (decimal.NullDecimal, error) {
	v, ok := p.Get(TagAmount)
	if !ok {
		return decimal.NullDecimal{}, nil
	}
	d, err := ParseAmount(v)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// AccountInfo parses the merchant account template (tag 26).
func (p *Payload) AccountInfo() ([]Field, error) {
	v, ok := p.Get(TagMerchantAccount)
	if !ok {
		return nil, nil
	}
	return ParseFields(v)
}

// AdditionalData returns the parsed tag 62 sub-fields in payload order.
func (p *Payload) AdditionalData() []Field {
	return append([]Field(nil), p.additional...)
}

// TerminalID returns the terminal sub-field of tag 62.
func (p *Payload) TerminalID() string {
	f, _ := FindField(p.additional, SubTagTerminalID)
	return f.Value
}

// Remarks returns the bill reference sub-field of tag 62.
func (p *Payload) Remarks() string {
	f, _ := FindField(p.additional, SubTagBillNumber)
	return f.Value
}

// MerchantName returns tag 59 as carried, without re-sanitizing.
func (p *Payload) MerchantName() string {
	v, _ := p.Get(TagMerchantName)
	return v
}

// MerchantCity returns tag 60.
func (p *Payload) MerchantCity() string {
	v, _ := p.Get(TagMerchantCity)
	return v
}

// CRC returns the checksum carried by the payload, uppercased.
func (p *Payload) CRC() string {
	v, _ := p.Get(TagCRC)
	return strings.ToUpper(v)
}

// String returns the payload exactly as it was decoded.
func (p *Payload) String() string {
	return p.raw
}

// LogValue implements the slog.LogValuer interface for structured logging.
func (p *Payload) LogValue() slog.Value {
	fieldArgs := make([]any, 0, len(p.fields))
	for _, f := range p.fields {
		fieldArgs = append(fieldArgs, slog.String(TagName(f.Tag), f.Value))
	}

	return slog.GroupValue(
		slog.String("payload", p.raw),
		slog.Bool("dynamic", p.IsDynamic()),
		slog.Group("fields", fieldArgs...),
	)
}
