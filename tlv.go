package emvqr

import "fmt"

// FormatTag encodes a single field as tag, two-digit zero-padded decimal
// length, value. The tag must be two ASCII digits and the value at most 99
// ASCII characters. Values are never truncated here.
func FormatTag(tag, value string) (string, error) {
	buf, err := appendField(make([]byte, 0, 4+len(value)), tag, value)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// FormatFields encodes fields in the given order and concatenates them.
// The result is typically used as the value of a parent template tag.
func FormatFields(fields ...Field) (string, error) {
	size := 0
	for _, f := range fields {
		size += 4 + len(f.Value)
	}

	buf := make([]byte, 0, size)
	for _, f := range fields {
		var err error
		if buf, err = appendField(buf, f.Tag, f.Value); err != nil {
			return "", err
		}
	}
	return string(buf), nil
}

// appendField is the single place where the TLV layout is written.
func appendField(dst []byte, tag, value string) ([]byte, error) {
	if !isValidTag(tag) {
		return dst, encodingErr(tag, ErrInvalidTag)
	}
	if len(value) > MaxValueLength {
		return dst, encodingErr(tag, fmt.Errorf("%w: %d characters, maximum %d", ErrValueTooLong, len(value), MaxValueLength))
	}
	for i := 0; i < len(value); i++ {
		if value[i] > 0x7F {
			return dst, encodingErr(tag, fmt.Errorf("%w at position %d", ErrNonASCII, i))
		}
	}

	n := len(value)
	dst = append(dst, tag...)
	dst = append(dst, byte('0'+n/10), byte('0'+n%10))
	dst = append(dst, value...)
	return dst, nil
}

// ParseFields splits a TLV string into its fields, preserving order. It
// does not descend into templates; call it again on a field's value for
// that.
func ParseFields(data string) ([]Field, error) {
	fields := make([]Field, 0, 16)

	offset := 0
	for offset < len(data) {
		// Tag and length are 2 characters each
		if offset+4 > len(data) {
			tag := data[offset:min(offset+2, len(data))]
			return nil, parseErr(tag, offset, fmt.Errorf("%w: need 4 header characters, got %d", ErrTruncated, len(data)-offset))
		}

		tag := data[offset : offset+2]
		if !isValidTag(tag) {
			return nil, parseErr(tag, offset, ErrInvalidTag)
		}

		lengthStr := data[offset+2 : offset+4]
		if !isDigits(lengthStr) {
			return nil, parseErr(tag, offset, fmt.Errorf("%w %q", ErrInvalidLength, lengthStr))
		}
		length := int(lengthStr[0]-'0')*10 + int(lengthStr[1]-'0')

		start := offset + 4
		if start+length > len(data) {
			return nil, parseErr(tag, offset, fmt.Errorf("%w: need %d value characters, got %d", ErrTruncated, length, len(data)-start))
		}

		fields = append(fields, Field{Tag: tag, Value: data[start : start+length]})
		offset = start + length
	}

	return fields, nil
}

// FindField returns the first field with the given tag.
func FindField(fields []Field, tag string) (Field, bool) {
	for _, f := range fields {
		if f.Tag == tag {
			return f, true
		}
	}
	return Field{}, false
}

// FieldsToMap converts fields to a tag -> value map. When a tag repeats,
// the last occurrence wins.
func FieldsToMap(fields []Field) map[string]string {
	result := make(map[string]string, len(fields))
	for _, f := range fields {
		result[f.Tag] = f.Value
	}
	return result
}
