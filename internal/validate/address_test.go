package validate

import (
	"errors"
	"testing"

	"github.com/SohamNaik26/finance-integration/internal/config"
)

func TestEVMAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"valid checksummed", "0xEFfAB7cCEBF63FbEFB4884964b12259d4374FaAa", false},
		{"valid lowercase", "0xeffab7ccebf63fbefb4884964b12259d4374faaa", false},
		{"valid without prefix", "effab7ccebf63fbefb4884964b12259d4374faaa", false},
		{"too short", "0x1234", true},
		{"non-hex characters", "0xZZfAB7cCEBF63FbEFB4884964b12259d4374FaAa", true},
		{"empty", "", true},
		{"tron address", "TLyqzVGLV1srkB7dToTAEqgDSfPtXRJZYH", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EVMAddress(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Errorf("EVMAddress(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, config.ErrInvalidAddress) {
				t.Errorf("error %v is not ErrInvalidAddress", err)
			}
		})
	}
}

func TestTronAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"valid mainnet", "TLyqzVGLV1srkB7dToTAEqgDSfPtXRJZYH", false},
		{"valid exchange wallet", "TQn9Y2khEsLJW1ChVWFMSMeRDow5KcbLSE", false},
		{"tampered last character", "TLyqzVGLV1srkB7dToTAEqgDSfPtXRJZYG", true},
		{"wrong length", "TLyqzVGLV1srkB7dToTAEqgDSfPt", true},
		{"invalid base58 alphabet", "TLyqzVGLV1srkB7dToTAEqgDSfPtXRJ0OI", true},
		{"evm address", "0xEFfAB7cCEBF63FbEFB4884964b12259d4374FaAa", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TronAddress(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Errorf("TronAddress(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, config.ErrInvalidAddress) {
				t.Errorf("error %v is not ErrInvalidAddress", err)
			}
		})
	}
}
