package emvqr

// Builder assembles a payload field by field, in call order. The first
// error is kept and every later call becomes a no-op, so a chain only
// needs to be checked once, at Seal.
type Builder struct {
	buf    []byte
	err    error
	sealed bool
}

func NewBuilder() *Builder {
	return &Builder{buf: getBuffer()}
}

// Add appends a single field.
func (b *Builder) Add(tag, value string) *Builder {
	if b.err != nil {
		return b
	}
	if b.sealed {
		b.err = ErrBuilderSealed
		return b
	}
	b.buf, b.err = appendField(b.buf, tag, value)
	return b
}

// AddIf appends the field only when present is true. Absent fields are
// left out entirely, not written with an empty value.
func (b *Builder) AddIf(present bool, tag, value string) *Builder {
	if !present {
		return b
	}
	return b.Add(tag, value)
}

// AddGroup encodes fields as a nested template and appends it as the value
// of tag. Sub-field order is preserved.
func (b *Builder) AddGroup(tag string, fields ...Field) *Builder {
	if b.err != nil {
		return b
	}
	group, err := FormatFields(fields...)
	if err != nil {
		b.err = err
		return b
	}
	return b.Add(tag, group)
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error {
	return b.err
}

// Len is the number of characters appended so far.
func (b *Builder) Len() int {
	return len(b.buf)
}

// String returns the unsealed body built so far.
func (b *Builder) String() string {
	return string(b.buf)
}

// Seal appends the CRC field and returns the finished payload. The builder
// cannot be used afterwards.
func (b *Builder) Seal() (string, error) {
	if b.sealed {
		return "", ErrBuilderSealed
	}
	defer b.release()

	if b.err != nil {
		return "", b.err
	}

	b.buf = append(b.buf, CRCHeader...)
	crc := NewCRC16()
	crc.Write(b.buf) // appendField only admits ASCII, so bytes == characters
	var sum [4]byte
	encodeHex16(sum[:], crc.Sum16())
	b.buf = append(b.buf, sum[:]...)

	return string(b.buf), nil
}

func (b *Builder) release() {
	putBuffer(b.buf)
	b.buf = nil
	b.sealed = true
}
