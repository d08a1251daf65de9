package emvqr

import "github.com/shopspring/decimal"

// Field is a single tag-length-value record. The length is implied by
// len(Value) and written as two decimal digits.
type Field struct {
	Tag   string `json:"tag" yaml:"tag"`
	Value string `json:"value" yaml:"value"`
}

// Encode formats the field with FormatTag.
func (f Field) Encode() (string, error) {
	return FormatTag(f.Tag, f.Value)
}

// EncodedLen is the number of characters the field occupies once encoded.
func (f Field) EncodedLen() int {
	return 4 + len(f.Value)
}

// Transaction holds the per-request input of the encoder. An invalid
// (null) Amount produces a static code without tag 54.
type Transaction struct {
	Amount  decimal.NullDecimal
	Remarks string
}

// StaticTransaction returns a transaction without an amount.
func StaticTransaction(remarks string) Transaction {
	return Transaction{Remarks: remarks}
}

// DynamicTransaction returns a transaction carrying amount.
func DynamicTransaction(amount decimal.Decimal, remarks string) Transaction {
	return Transaction{
		Amount:  decimal.NewNullDecimal(amount),
		Remarks: remarks,
	}
}
