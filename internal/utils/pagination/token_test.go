package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	recordedAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(recordedAt, "rec-42")
	assert.NotEmpty(t, token)

	decodedAt, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, recordedAt.Equal(decodedAt))
	assert.Equal(t, "rec-42", decodedID)

	// ids may themselves contain the separator
	token = EncodeToken(recordedAt, "a|b")
	_, decodedID, err = DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a|b", decodedID)

	// non-UTC input comes back as the same instant
	local := time.Date(2023, 5, 15, 9, 0, 0, 0, time.FixedZone("X", -5*3600))
	decodedAt, _, err = DecodeToken(EncodeToken(local, "x"))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	emptyID := base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|"))
	_, _, err = DecodeToken(emptyID)
	require.Error(t, err)

	badTime := base64.URLEncoding.EncodeToString([]byte("notadate|rec-1"))
	_, _, err = DecodeToken(badTime)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time parse")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0, 20, 100))
	assert.Equal(t, 20, ClampLimit(-3, 20, 100))
	assert.Equal(t, 50, ClampLimit(50, 20, 100))
	assert.Equal(t, 100, ClampLimit(500, 20, 100))
}
