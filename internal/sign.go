package internal

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"pay24/entity"
)

// legacyPadBlockSize is the block size the pad length is computed
// against. The gateway's reference implementation takes it from an
// unrelated 8-byte cipher rather than from the 16-byte AES block, so a
// 20-byte digest receives 4 pad bytes and the remaining tail up to the
// AES block boundary is filled with zeros. This arithmetic is a
// compatibility contract with the live gateway; changing it breaks
// every signature.
const legacyPadBlockSize = 8

// SignGenerator computes the authentication code appended to every
// outbound request and expected on every inbound notification. Signing
// is a pure deterministic computation: no I/O, no randomness.
type SignGenerator struct {
	creds entity.Credentials
}

func NewSignGenerator(creds entity.Credentials) *SignGenerator {
	return &SignGenerator{creds: creds}
}

// SignMessage signs a message: the SHA-1 digest of the message is
// padded, encrypted with AES-CBC under the merchant key, and the first
// 16 ciphertext bytes are returned as 32 uppercase hex characters.
// The IV is the merchant ID concatenated with its own reversal.
func (g *SignGenerator) SignMessage(message string) (string, error) {
	key, err := g.creds.RawKey()
	if err != nil {
		return "", err
	}

	digest := sha1.Sum([]byte(message))
	data := addPadding(digest[:])

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("init cipher: %w", err)
	}

	iv := []byte(g.creds.Mid() + reverse(g.creds.Mid()))
	if len(iv) != block.BlockSize() {
		return "", fmt.Errorf("%w: iv length %d", entity.ErrInvalidCredentials, len(iv))
	}

	ciphertext := make([]byte, len(data))
	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ciphertext, data)

	return strings.ToUpper(hex.EncodeToString(ciphertext[:16])), nil
}

// RequestChecksumMessage builds the canonical string signed on both
// sides of the protocol: merchant ID, amount, currency and transaction
// ID, concatenated without separators. Field order matters; the gateway
// recomputes the same concatenation.
func (g *SignGenerator) RequestChecksumMessage(amount, currency, msTxnID string) string {
	return g.creds.Mid() + amount + currency + msTxnID
}

// addPadding appends the PKCS#7 pad computed against the legacy 8-byte
// block size, then zero-fills to the AES block boundary the way the
// original cipher runtime did.
func addPadding(data []byte) []byte {
	pad := legacyPadBlockSize - len(data)%legacyPadBlockSize
	padded := append(data, bytes.Repeat([]byte{byte(pad)}, pad)...)
	if tail := len(padded) % aes.BlockSize; tail != 0 {
		padded = append(padded, make([]byte, aes.BlockSize-tail)...)
	}
	return padded
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
