package normalize

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/dmagro/eth-rpc-outfmt/internal/checksum"
)

// Address converts an address value into its checksummed form.
//
// A nil value passes through as nil, which is how the node reports an absent
// recipient (contract creation) or creator. Strings that are not hex addresses
// come back unchanged from the checksum primitive.
func Address(v any) (any, error) {
	switch addr := v.(type) {
	case nil:
		return nil, nil
	case string:
		return checksum.Address(addr), nil
	default:
		return nil, errors.Wrapf(ErrInvalidAddress, "unexpected %T", v)
	}
}

// Number converts a quantity into an arbitrary-precision integer.
//
// Falsy input (nil, "", 0, false, NaN) is zero and never an error. Strings are
// read as hex when prefixed with 0x, as decimal otherwise; exponent notation is
// accepted as long as it denotes an integer. The result is always a fresh
// *big.Int the caller may modify.
//
// Examples:
//   - "0x100" -> 256
//   - "456" -> 456
//   - 0x7b -> 123
//   - nil -> 0
//   - "0x" -> 0
func Number(v any) (*big.Int, error) {
	switch n := v.(type) {
	case nil:
		return new(big.Int), nil
	case *big.Int:
		if n == nil {
			return new(big.Int), nil
		}
		return new(big.Int).Set(n), nil
	case big.Int:
		return new(big.Int).Set(&n), nil
	case string:
		return parseNumber(n)
	case json.Number:
		return parseNumber(string(n))
	case bool:
		if !n {
			return new(big.Int), nil
		}
	case int:
		return big.NewInt(int64(n)), nil
	case int8:
		return big.NewInt(int64(n)), nil
	case int16:
		return big.NewInt(int64(n)), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case float32:
		return floatNumber(float64(n))
	case float64:
		return floatNumber(n)
	}
	return nil, errors.Wrapf(ErrInvalidNumber, "unsupported value %v (%T)", v, v)
}

// maxFloatBits bounds values written in exponent or decimal-point form.
const maxFloatBits = 256

func parseNumber(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}

	trimmed := strings.TrimSpace(s)
	if hex, ok := cutHexPrefix(trimmed); ok {
		if hex == "" {
			return new(big.Int), nil
		}
		if hex[0] == '+' || hex[0] == '-' {
			return nil, errors.Wrapf(ErrInvalidNumber, "signed hex %q", s)
		}
		if n, ok := new(big.Int).SetString(hex, 16); ok {
			return n, nil
		}
		return nil, errors.Wrapf(ErrInvalidNumber, "invalid hex %q", s)
	}

	if n, ok := new(big.Int).SetString(trimmed, 10); ok {
		return n, nil
	}

	// "1e3", "100.0"
	f, _, err := big.ParseFloat(trimmed, 10, maxFloatBits, big.ToNearestEven)
	if err == nil && f.MantExp(nil) > maxFloatBits {
		return nil, errors.Wrapf(ErrInvalidNumber, "%q exceeds %d bits", s, maxFloatBits)
	}
	if err == nil && f.IsInt() {
		n, _ := f.Int(nil)
		return n, nil
	}
	return nil, errors.Wrapf(ErrInvalidNumber, "%q", s)
}

func cutHexPrefix(s string) (string, bool) {
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		return rest, true
	}
	return strings.CutPrefix(s, "0X")
}

func floatNumber(f float64) (*big.Int, error) {
	if f == 0 || math.IsNaN(f) {
		return new(big.Int), nil
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, errors.Wrapf(ErrInvalidNumber, "non-integral value %v", f)
	}
	n, _ := big.NewFloat(f).Int(nil)
	return n, nil
}

// Date converts a unix timestamp in seconds into a UTC time.
//
// Example: "0x57513668" -> 2016-06-03T07:48:56Z
func Date(v any) (time.Time, error) {
	secs, err := Number(v)
	if err != nil {
		return time.Time{}, err
	}
	if !secs.IsInt64() {
		return time.Time{}, errors.Wrapf(ErrInvalidDate, "%s seconds out of range", secs)
	}
	return time.Unix(secs.Int64(), 0).UTC(), nil
}
