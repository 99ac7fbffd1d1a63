// Package entity defines data models for the pay24 gateway integration service.
package entity

import (
	"encoding/hex"
	"fmt"
	"regexp"
)

var (
	midPattern     = regexp.MustCompile(`^[a-zA-Z0-9]{8}$`)
	keyPattern     = regexp.MustCompile(`^[a-zA-Z0-9]{64}$`)
	eshopIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{1,10}$`)
)

// Credentials holds the merchant identity assigned by the gateway
// operator. A Credentials value is immutable after construction and is
// safe to share between goroutines.
type Credentials struct {
	mid     string
	key     string
	eshopID string
}

// NewCredentials validates and builds a Credentials value. The merchant
// ID must be exactly 8 alphanumeric characters, the key 64 characters
// (hex encoding of the 32-byte cipher key) and the shop ID 1-10
// alphanumeric characters. Validation fails fast with
// ErrInvalidCredentials; a Credentials value that exists is well-formed.
func NewCredentials(mid, key, eshopID string) (Credentials, error) {
	if !midPattern.MatchString(mid) {
		return Credentials{}, fmt.Errorf("%w: mid %q", ErrInvalidCredentials, mid)
	}
	if !keyPattern.MatchString(key) {
		return Credentials{}, fmt.Errorf("%w: key must be 64 characters", ErrInvalidCredentials)
	}
	if !eshopIDPattern.MatchString(eshopID) {
		return Credentials{}, fmt.Errorf("%w: eshop id %q", ErrInvalidCredentials, eshopID)
	}
	return Credentials{mid: mid, key: key, eshopID: eshopID}, nil
}

// Mid returns the 8-character merchant identifier.
func (c Credentials) Mid() string { return c.mid }

// EshopID returns the shop identifier scoping the merchant's store.
func (c Credentials) EshopID() string { return c.eshopID }

// RawKey decodes the hex secret key into the 32 raw bytes used as the
// cipher key. The construction-time check only guarantees 64
// alphanumeric characters, so a key that is not valid hex surfaces here.
func (c Credentials) RawKey() ([]byte, error) {
	key, err := hex.DecodeString(c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: key is not hex encoded", ErrInvalidCredentials)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: key decodes to %d bytes, want 32", ErrInvalidCredentials, len(key))
	}
	return key, nil
}
