package rpc

import (
	"strings"
	"testing"
)

func TestParseHexUint64(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"0x172721e", 24277534, false},
		{"172721e", 24277534, false},
		{"0x0", 0, false},
		{"", 0, false},
		{"0x", 0, false},
		{"0xzz", 0, true},
		{"0x10000000000000000", 0, true},
		{"0x-5", 0, true},
		{"0x+5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexUint64(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexUint64(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHexUint64(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestUint64ToHex(t *testing.T) {
	if got := Uint64ToHex(0); got != "0x0" {
		t.Errorf("Uint64ToHex(0) = %s", got)
	}
	if got := Uint64ToHex(12345); got != "0x3039" {
		t.Errorf("Uint64ToHex(12345) = %s", got)
	}
}

func TestNormalizeBlockArg(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "latest"},
		{"latest", "latest"},
		{" Latest ", "latest"},
		{"pending", "pending"},
		{"earliest", "earliest"},
		{"finalized", "finalized"},
		{"safe", "safe"},
		{"12345", "0x3039"},
		{"0x172721E", "0x172721e"},
		{"0x00ff", "0xff"},
		{"0x0", "0x0"},
		{"0x", "0x0"},
		{"0x+5", "0x+5"},
		{"0xzz", "0xzz"},
		{"0x88DF016429689C079F3B2F6AD39FA052532C56795B733DA78A91EBE6A713944B", "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"},
		{"abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeBlockArg(tt.input); got != tt.want {
				t.Errorf("NormalizeBlockArg(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"valid with 0x", "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", false},
		{"valid without 0x", "d8dA6BF26964aF9D7eEd9e03E53415D37aA96045", false},
		{"lowercase", "0x63cf90d3f0410092fc0fca41846f596223979195", false},
		{"too short", "0xd8dA6BF269", true},
		{"invalid hex", "0xZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAddress(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHash(t *testing.T) {
	valid := "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"

	tests := []struct {
		name    string
		hash    string
		wantErr bool
	}{
		{"valid", valid, false},
		{"uppercase hex", "0x88DF016429689C079F3B2F6AD39FA052532C56795B733DA78A91EBE6A713944B", false},
		{"missing prefix", valid[2:], true},
		{"too short", valid[:64], true},
		{"non hex", valid[:65] + "g", true},
		{"odd length", valid[:65], true},
		{"too long", valid + "00", true},
		{"upper prefix", "0X" + valid[2:], false},
		{"empty", "", true},
		{"address", "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHash(tt.hash)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHash(%q) error = %v, wantErr %v", tt.hash, err, tt.wantErr)
			}
			if err != nil && !strings.HasPrefix(err.Error(), "invalid hash: ") {
				t.Errorf("ValidateHash(%q) error = %q", tt.hash, err)
			}
		})
	}

	if !IsBlockHash(" " + valid + " ") {
		t.Error("IsBlockHash should accept a padded hash")
	}
	if IsBlockHash("0x3039") {
		t.Error("IsBlockHash should reject a block number")
	}
}
