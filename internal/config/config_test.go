package config

import (
	"errors"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Network:      "mainnet",
		Port:         8080,
		AccountCount: 100,
		APIRateLimit: 50,
	}
}

func TestValidate_ValidNetworks(t *testing.T) {
	for _, network := range []string{"mainnet", "devnet"} {
		cfg := validConfig()
		cfg.Network = network
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() error = %v for network=%q, want nil", err, network)
		}
	}
}

func TestValidate_InvalidNetwork(t *testing.T) {
	tests := []struct {
		name    string
		network string
	}{
		{"empty", ""},
		{"foobar", "foobar"},
		{"Mainnet case sensitive", "Mainnet"},
		{"testnet", "testnet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Network = tt.network
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() expected error for network=%q, got nil", tt.network)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"zero", 0},
		{"negative", -1},
		{"too high", 65536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Port = tt.port
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate() expected error for port=%d, got nil", tt.port)
			}
		})
	}
}

func TestValidate_ValidPortBoundaries(t *testing.T) {
	for _, port := range []int{1, 3000, 65535} {
		cfg := validConfig()
		cfg.Port = port
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() error = %v for port=%d, want nil", err, port)
		}
	}
}

func TestValidate_AccountCount(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{"zero", 0, true},
		{"negative", -5, true},
		{"one", 1, false},
		{"max", MaxAccounts, false},
		{"over max", MaxAccounts + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.AccountCount = tt.count
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v for count=%d", err, tt.wantErr, tt.count)
			}
		})
	}
}

func TestValidate_APIRateLimit(t *testing.T) {
	cfg := validConfig()
	cfg.APIRateLimit = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() expected error for zero rate limit")
	}
}
