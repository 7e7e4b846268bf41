package rpc

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// ParseHexUint64 converts a hex-encoded string (with or without "0x" prefix) to uint64.
//
// Examples:
//   - "0x172721e" -> 24277534
//   - "0x0" -> 0
//   - "" -> 0
func ParseHexUint64(hex string) (uint64, error) {
	hex = strings.TrimPrefix(hex, "0x")
	if hex == "" {
		return 0, nil
	}
	if hex[0] == '+' || hex[0] == '-' {
		return 0, errors.Errorf("invalid hex: %s", hex)
	}

	val := new(big.Int)
	_, ok := val.SetString(hex, 16)
	if !ok || !val.IsUint64() {
		return 0, errors.Errorf("invalid hex: %s", hex)
	}
	return val.Uint64(), nil
}

// Uint64ToHex encodes n as a 0x-prefixed quantity.
func Uint64ToHex(n uint64) string {
	return "0x" + strconv.FormatUint(n, 16)
}

// NormalizeBlockArg converts block identifiers (decimal, hex, or tag) to RPC format.
//
// Examples:
//   - "" -> "latest"
//   - "pending" -> "pending"
//   - "12345" -> "0x3039"
//   - "0x172721e" -> "0x172721e"
//   - "0x00ff" -> "0xff"
//
// Hex numbers are re-encoded without leading zeros. Anything else, block
// hashes included, is returned lowercased and the node decides whether it is
// valid.
func NormalizeBlockArg(arg string) string {
	arg = strings.TrimSpace(strings.ToLower(arg))

	switch arg {
	case "":
		return "latest"
	case "latest", "pending", "earliest", "safe", "finalized":
		return arg
	}

	if strings.HasPrefix(arg, "0x") {
		num, err := ParseHexUint64(arg)
		if err != nil {
			return arg
		}
		return Uint64ToHex(num)
	}

	num, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return arg
	}
	return Uint64ToHex(num)
}

// IsBlockHash reports whether arg looks like a 32-byte hash rather than a
// block number or tag.
func IsBlockHash(arg string) bool {
	return ValidateHash(strings.TrimSpace(arg)) == nil
}

// ValidateAddress checks that addr is a 20-byte hex address ("0x" optional).
func ValidateAddress(addr string) error {
	if !common.IsHexAddress(addr) {
		return errors.Errorf("invalid address: %q", addr)
	}
	return nil
}

// ValidateHash checks that h is a 0x-prefixed 32-byte hex string.
func ValidateHash(h string) error {
	b, err := hexutil.Decode(h)
	if err != nil || len(b) != common.HashLength {
		return errors.Errorf("invalid hash: %q", h)
	}
	return nil
}
