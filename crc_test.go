package emvqr_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aayushgelal/emvqr"
)

func TestComputeCRC_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "empty input leaves initial register", data: "", want: "FFFF"},
		{name: "catalogue check value", data: "123456789", want: "29B1"},
		{name: "sealed merchant payload", data: "00020101021226310011fonepay.com07162222140006995204541153035245406500.005802NP5932GAUTAM DHOOD KHARID BIKRI KENDRA6009Janaki RM6235071007067145770117Payment_At_Bistro6304", want: "C718"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, emvqr.ComputeCRC(tt.data))
		})
	}
}

func TestComputeCRC_FormatIsFourUppercaseHexDigits(t *testing.T) {
	for _, data := range []string{"", "a", "6304", "000201", strings.Repeat("Z", 200)} {
		got := emvqr.ComputeCRC(data)
		require.Len(t, got, 4)
		require.Equal(t, strings.ToUpper(got), got)
		for _, c := range got {
			require.True(t, strings.ContainsRune("0123456789ABCDEF", c), "unexpected digit %q", c)
		}
	}
}

func TestCRC16_StreamingMatchesComputeCRC(t *testing.T) {
	data := "000201010211" + emvqr.CRCHeader

	c := emvqr.NewCRC16()
	c.WriteString(data[:5])
	c.Write([]byte(data[5:]))
	require.Equal(t, emvqr.ComputeCRC(data), c.Hex())

	c.Reset()
	require.Equal(t, uint16(0xFFFF), c.Sum16())
}

func TestCRC16_CodePointsUseLowByte(t *testing.T) {
	// U+0141 has low byte 0x41 ('A')
	require.Equal(t, emvqr.ComputeCRC("A"), emvqr.ComputeCRC("Ł"))
}

func TestCRC16_InvalidUTF8IsFedAsRawBytes(t *testing.T) {
	c := emvqr.NewCRC16()
	c.Write([]byte{0xFF})
	require.Equal(t, c.Hex(), emvqr.ComputeCRC("\xff"))

	c.Reset()
	c.Write([]byte{'A', 0xC3, 'B'})
	require.Equal(t, c.Hex(), emvqr.ComputeCRC("A\xc3B"))
}

func TestCRC16_SupplementaryCharactersUseSurrogateHalves(t *testing.T) {
	// U+1F600 is D83D DE00 in UTF-16
	c := emvqr.NewCRC16()
	c.Write([]byte{0x3D, 0x00})
	require.Equal(t, c.Hex(), emvqr.ComputeCRC("\U0001F600"))
}

func TestSeal_ChecksumCoversHeaderButNotItself(t *testing.T) {
	body := "00020101021126310011fonepay.com07162222140006995204541153035245802NP"
	sealed := emvqr.Seal(body)

	require.True(t, strings.HasPrefix(sealed, body+emvqr.CRCHeader))
	require.Len(t, sealed, len(body)+8)
	require.Equal(t, emvqr.ComputeCRC(body+emvqr.CRCHeader), sealed[len(sealed)-4:])
	require.NotEqual(t, emvqr.ComputeCRC(body), sealed[len(sealed)-4:])
}

func TestSplitCRC(t *testing.T) {
	sealed := emvqr.Seal("000201")

	signed, checksum, err := emvqr.SplitCRC(sealed)
	require.NoError(t, err)
	require.Equal(t, "0002016304", signed)
	require.Equal(t, sealed[len(sealed)-4:], checksum)
	require.Equal(t, checksum, emvqr.ComputeCRC(signed))

	for _, bad := range []string{"", "6304", "630412", "000201", "0002016305ABCD"} {
		_, _, err := emvqr.SplitCRC(bad)
		require.ErrorIs(t, err, emvqr.ErrMissingCRC, "input %q", bad)
	}
}

func TestVerifyCRC_RoundTrip(t *testing.T) {
	for _, body := range []string{"", "000201", "000201010212", strings.Repeat("5802NP", 20)} {
		sealed := emvqr.Seal(body)
		require.NoError(t, emvqr.VerifyCRC(sealed))

		// Re-sealing the signed part reproduces the same checksum.
		signed, checksum, err := emvqr.SplitCRC(sealed)
		require.NoError(t, err)
		require.Equal(t, checksum, emvqr.ComputeCRC(signed))
	}
}

func TestVerifyCRC_AcceptsLowercaseChecksum(t *testing.T) {
	sealed := emvqr.Seal("000201010211")
	lower := sealed[:len(sealed)-4] + strings.ToLower(sealed[len(sealed)-4:])
	require.NoError(t, emvqr.VerifyCRC(lower))
}

func TestVerifyCRC_DetectsCorruption(t *testing.T) {
	sealed := emvqr.Seal("000201010212540510.00")
	corrupted := strings.Replace(sealed, "10.00", "90.00", 1)

	err := emvqr.VerifyCRC(corrupted)
	require.ErrorIs(t, err, emvqr.ErrChecksumMismatch)

	var ce *emvqr.ChecksumError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, emvqr.ComputeCRC(corrupted[:len(corrupted)-4]), ce.Expected)
	require.Equal(t, sealed[len(sealed)-4:], ce.Actual)
}

func TestComputeCRC_ConcurrentCallsAreIndependent(t *testing.T) {
	inputs := []string{"123456789", "000201", "", "6304"}
	want := make([]string, len(inputs))
	for i, in := range inputs {
		want[i] = emvqr.ComputeCRC(in)
	}

	var wg sync.WaitGroup
	for n := 0; n < 50; n++ {
		for i, in := range inputs {
			wg.Add(1)
			go func(i int, in string) {
				defer wg.Done()
				if got := emvqr.ComputeCRC(in); got != want[i] {
					t.Errorf("ComputeCRC(%q) = %s, want %s", in, got, want[i])
				}
			}(i, in)
		}
	}
	wg.Wait()
}
