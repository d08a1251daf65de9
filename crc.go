package emvqr

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// CRC-16/CCITT-FALSE parameters: no input/output reflection, no final XOR.
const (
	crcInit       uint16 = 0xFFFF
	crcPolynomial uint16 = 0x1021
)

// CRC16 is the running CRC-16/CCITT-FALSE register. A CRC16 is not safe for
// concurrent use; ComputeCRC allocates a fresh one per call.
type CRC16 struct {
	register uint16
}

// NewCRC16 returns a register initialised to 0xFFFF.
func NewCRC16() *CRC16 {
	return &CRC16{register: crcInit}
}

// Reset puts the register back to its initial value.
func (c *CRC16) Reset() {
	c.register = crcInit
}

// update folds one byte into the register, MSB first.
func (c *CRC16) update(b byte) {
	c.register ^= uint16(b) << 8
	for i := 0; i < 8; i++ {
		if c.register&0x8000 != 0 {
			c.register = c.register<<1 ^ crcPolynomial
		} else {
			c.register <<= 1
		}
	}
}

// Write feeds raw bytes into the register. It never returns an error.
func (c *CRC16) Write(p []byte) (int, error) {
	for _, b := range p {
		c.update(b)
	}
	return len(p), nil
}

// WriteString feeds s one UTF-16 code unit at a time, using the low 8
// bits of each unit; characters above U+FFFF count as their two surrogate
// halves. Bytes that are not valid UTF-8 are fed as is. For the ASCII
// payloads this package produces, that is the same as Write([]byte(s)).
func (c *CRC16) WriteString(s string) (int, error) {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			c.update(s[i])
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			c.update(byte(hi))
			c.update(byte(lo))
		default:
			c.update(byte(r))
		}
		i += size
	}
	return len(s), nil
}

// Sum16 returns the current register value.
func (c *CRC16) Sum16() uint16 {
	return c.register
}

// Hex returns the register as four uppercase, zero-padded hex digits.
func (c *CRC16) Hex() string {
	var buf [4]byte
	encodeHex16(buf[:], c.register)
	return string(buf[:])
}

// ComputeCRC returns the CRC-16/CCITT-FALSE of data as four uppercase hex
// digits. When sealing a payload, data must end with CRCHeader and must not
// include the checksum itself.
func ComputeCRC(data string) string {
	c := NewCRC16()
	c.WriteString(data)
	return c.Hex()
}

// Seal appends the CRC field to body: body + "6304" + CRC(body + "6304").
func Seal(body string) string {
	signed := body + CRCHeader
	return signed + ComputeCRC(signed)
}

// SplitCRC cuts a sealed payload at the checksum boundary. signed ends with
// CRCHeader and is exactly the input the checksum was computed over.
func SplitCRC(payload string) (signed, checksum string, err error) {
	n := len(payload)
	if n < len(CRCHeader)+4 || payload[n-8:n-4] != CRCHeader {
		return "", "", ErrMissingCRC
	}
	return payload[:n-4], payload[n-4:], nil
}

// VerifyCRC recomputes the checksum of a sealed payload. The carried
// checksum is compared case-insensitively.
func VerifyCRC(payload string) error {
	signed, checksum, err := SplitCRC(payload)
	if err != nil {
		return err
	}

	computed := ComputeCRC(signed)
	if !strings.EqualFold(computed, checksum) {
		return &ChecksumError{Expected: computed, Actual: checksum}
	}
	return nil
}
