package internal

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pay24/entity"
)

const (
	testMid     = "demoOBCH"
	testKey     = "5a02b44741d8e3d0bfb7d02bdf6b3f0f0f73d4ef5160bc4a273b3535ab27a82d"
	testEshopID = "11111111"
)

func testCredentials(t *testing.T) entity.Credentials {
	t.Helper()
	creds, err := entity.NewCredentials(testMid, testKey, testEshopID)
	require.NoError(t, err)
	return creds
}

func TestSignMessageDeterministic(t *testing.T) {
	signer := NewSignGenerator(testCredentials(t))

	first, err := signer.SignMessage("Check sign text for MID " + testMid)
	require.NoError(t, err)
	second, err := signer.SignMessage("Check sign text for MID " + testMid)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{32}$`), first)
}

func TestSignMessageDependsOnMessage(t *testing.T) {
	signer := NewSignGenerator(testCredentials(t))

	a, err := signer.SignMessage("message a")
	require.NoError(t, err)
	b, err := signer.SignMessage("message b")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSignMessageDependsOnCredentials(t *testing.T) {
	other, err := entity.NewCredentials("otherMID", testKey, testEshopID)
	require.NoError(t, err)

	a, err := NewSignGenerator(testCredentials(t)).SignMessage("same message")
	require.NoError(t, err)
	b, err := NewSignGenerator(other).SignMessage("same message")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSignMessageNonHexKey(t *testing.T) {
	// 64 alphanumeric characters pass construction but do not decode
	// to 32 raw bytes
	badKey := "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"
	creds, err := entity.NewCredentials(testMid, badKey, testEshopID)
	require.NoError(t, err)

	_, err = NewSignGenerator(creds).SignMessage("anything")
	assert.True(t, errors.Is(err, entity.ErrInvalidCredentials))
}

func TestAddPadding(t *testing.T) {
	digest := make([]byte, 20)
	padded := addPadding(digest)

	// 20 digest bytes, 4 pad bytes of 0x04, zero fill to the AES block
	require.Len(t, padded, 32)
	for i := 20; i < 24; i++ {
		assert.Equal(t, byte(4), padded[i])
	}
	for i := 24; i < 32; i++ {
		assert.Equal(t, byte(0), padded[i])
	}
}

func TestReverse(t *testing.T) {
	assert.Equal(t, "HCBOomed", reverse("demoOBCH"))
	assert.Equal(t, "", reverse(""))
}

func TestRequestChecksumMessage(t *testing.T) {
	signer := NewSignGenerator(testCredentials(t))

	message := signer.RequestChecksumMessage("20.00", "EUR", "14300542")
	assert.Equal(t, testMid+"20.00"+"EUR"+"14300542", message)
}
