package checksum

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "0x63cf90d3f0410092fc0fca41846f596223979195", "0x63Cf90D3f0410092FC0fca41846f596223979195"},
		{"eip55 vector", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{"uppercase", "0xFB6916095CA1DF60BB79CE92CE3EA74C37C5D359", "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"},
		{"no prefix", "63cf90d3f0410092fc0fca41846f596223979195", "0x63Cf90D3f0410092FC0fca41846f596223979195"},
		{"too short", "0x1234", "0x1234"},
		{"not hex", "0xZZcf90d3f0410092fc0fca41846f596223979195", "0xZZcf90d3f0410092fc0fca41846f596223979195"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Address(tt.in))
		})
	}
}

func TestAddressIdempotent(t *testing.T) {
	addrs := []string{
		"0x63cf90d3f0410092fc0fca41846f596223979195",
		"0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb",
		"0xd1220a0cf47c7b9be7a2e6ba89f429762e7b9adb",
	}

	for _, a := range addrs {
		once := Address(a)
		assert.Equal(t, once, Address(once), a)
	}
}

func TestAddressConcurrent(t *testing.T) {
	const addr = "0x63cf90d3f0410092fc0fca41846f596223979195"

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "0x63Cf90D3f0410092FC0fca41846f596223979195", Address(addr))
		}()
	}
	wg.Wait()
}

func TestResize(t *testing.T) {
	defer Resize(DefaultCacheSize)

	Resize(1)
	Address("0x63cf90d3f0410092fc0fca41846f596223979195")
	Address("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	assert.Equal(t, 1, memo.Len())
}
