package normalize

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lowerAddress    = "0x63cf90d3f0410092fc0fca41846f596223979195"
	checksumAddress = "0x63Cf90D3f0410092FC0fca41846f596223979195"
)

// requireNumber asserts that v is a *big.Int equal to want (any base-0 literal).
func requireNumber(t *testing.T, want string, v any) {
	t.Helper()

	n, ok := v.(*big.Int)
	require.Truef(t, ok, "expected *big.Int, got %T", v)

	expected, ok := new(big.Int).SetString(want, 0)
	require.True(t, ok, want)
	assert.Equalf(t, 0, expected.Cmp(n), "want %s, got %s", expected, n)
}

// assertSameJSON compares two records by their JSON encoding, which renders
// *big.Int as a number and time.Time as RFC 3339.
func assertSameJSON(t *testing.T, want, got any) {
	t.Helper()

	w, err := json.Marshal(want)
	require.NoError(t, err)
	g, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(w), string(g))
}
