package qrimage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aayushgelal/emvqr"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestPNG(t *testing.T) {
	img, err := PNG(emvqr.Seal("000201010211"), 0)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestPNG_RefusesUnverifiedPayloads(t *testing.T) {
	_, err := PNG("000201010211", DefaultSize)
	require.ErrorIs(t, err, emvqr.ErrMissingCRC)

	sealed := emvqr.Seal("000201010211")
	_, err = PNG(strings.Replace(sealed, "010211", "010212", 1), DefaultSize)
	require.ErrorIs(t, err, emvqr.ErrChecksumMismatch)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qr.png")

	require.NoError(t, WriteFile(path, emvqr.Seal("000201010212540510.00"), 128))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestWriteFile_Errors(t *testing.T) {
	dir := t.TempDir()

	err := WriteFile(filepath.Join(dir, "bad.png"), "not a payload", DefaultSize)
	require.ErrorIs(t, err, emvqr.ErrMissingCRC)
	_, statErr := os.Stat(filepath.Join(dir, "bad.png"))
	require.True(t, os.IsNotExist(statErr))

	err = WriteFile(filepath.Join(dir, "missing", "qr.png"), emvqr.Seal("000201"), DefaultSize)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to write QR image")
}
