package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	c := Cursor{TweetID: "550e8400-e29b-41d4-a716-446655440000", CreatedUnix: 1700000000123}

	token, err := Encode(c)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := Decode(token)
	assert.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestDecodeEmptyTokenIsFirstPage(t *testing.T) {
	c, err := Decode("")
	assert.NoError(t, err)
	assert.True(t, c.IsZero())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("not-base64!!!")
	assert.Error(t, err)

	// valid base64, invalid JSON
	_, err = Decode("bm90LWpzb24=")
	assert.Error(t, err)
}
