package validate

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"

	"github.com/SohamNaik26/finance-integration/internal/config"
)

// tronAddressPrefix is the version byte of mainnet TRON addresses.
const tronAddressPrefix = 0x41

// EVMAddress validates that addr is a well-formed EVM hex address
// (0x + 40 hex characters).
func EVMAddress(addr string) error {
	if !common.IsHexAddress(addr) {
		return fmt.Errorf("%w: %q is not a valid EVM hex address", config.ErrInvalidAddress, addr)
	}
	return nil
}

// TronAddress validates a base58check TRON address: 25 decoded bytes, the
// 0x41 version prefix, and a matching double-SHA256 checksum.
func TronAddress(addr string) error {
	decoded, err := base58.Decode(addr)
	if err != nil {
		return fmt.Errorf("%w: %q: base58 decode failed: %v", config.ErrInvalidAddress, addr, err)
	}
	if len(decoded) != 25 {
		return fmt.Errorf("%w: %q: decoded to %d bytes, expected 25", config.ErrInvalidAddress, addr, len(decoded))
	}
	if decoded[0] != tronAddressPrefix {
		return fmt.Errorf("%w: %q: version byte 0x%02x, expected 0x41", config.ErrInvalidAddress, addr, decoded[0])
	}

	payload, checksum := decoded[:21], decoded[21:]
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	if !bytes.Equal(checksum, second[:4]) {
		return fmt.Errorf("%w: %q: checksum mismatch", config.ErrInvalidAddress, addr)
	}

	return nil
}
