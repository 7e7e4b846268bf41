// Package checksum converts hex addresses into their EIP-55 mixed-case form.
//
// Conversions are memoized: account lists and traces repeat the same handful
// of addresses many times, and each conversion costs a keccak256.
package checksum

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dmagro/eth-rpc-outfmt/internal/cache"
)

// DefaultCacheSize is the number of addresses kept before the oldest are evicted.
const DefaultCacheSize = 4096

var memo = cache.New[string, string](DefaultCacheSize)

// Address returns the EIP-55 checksummed form of addr.
//
// Input that is not a 20-byte hex address (with or without the 0x prefix) is
// returned unchanged; validating addresses is left to callers.
//
// Examples:
//   - "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed" -> "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
//   - "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed" -> "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
//   - "0x1234" -> "0x1234"
func Address(addr string) string {
	if !common.IsHexAddress(addr) {
		return addr
	}

	key := strings.ToLower(addr)
	if sum, ok := memo.Get(key); ok {
		return sum
	}

	sum := common.HexToAddress(addr).Hex()
	memo.Set(key, sum)
	return sum
}

// Resize changes how many conversions are remembered. Non-positive sizes are ignored.
func Resize(size int) {
	memo.Resize(size)
}
