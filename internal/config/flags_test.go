package config

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Host: "", Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		expectedAddr NetAddress
	}{
		{name: "valid localhost", input: "localhost:8080", expectedAddr: NetAddress{Host: "localhost", Port: 8080}},
		{name: "valid IPv4", input: "127.0.0.1:9090", expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "all interfaces", input: ":8080", expectedAddr: NetAddress{Host: "", Port: 8080}},
		{name: "missing colon", input: "localhost8080", expectError: true},
		{name: "non-numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "invalid host", input: "example.com:8080", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, NetAddress{}, addr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, addr)
		})
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "no flags",
			args: []string{},
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, &StructuredConfig{}, cfg)
			},
		},
		{
			name: "server and storage flags",
			args: []string{"-a", "127.0.0.1:9000", "-d", "postgres://db", "-redis-address", "localhost:6379", "-redis-db", "3"},
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
				assert.Equal(t, "postgres://db", cfg.Storage.DB.DSN)
				assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Address)
				assert.Equal(t, 3, cfg.Storage.Redis.DB)
			},
		},
		{
			name: "token flags",
			args: []string{
				"-token-sign-key", "secret", "-token-issuer", "iss",
				"-access-token-duration", "1m", "-refresh-token-duration", "2h",
				"-rotate-refresh-tokens", "-password-hash-cost", "5",
			},
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "secret", cfg.App.TokenSignKey)
				assert.Equal(t, "iss", cfg.App.TokenIssuer)
				assert.Equal(t, time.Minute, cfg.App.AccessTokenDuration)
				assert.Equal(t, 2*time.Hour, cfg.App.RefreshTokenDuration)
				assert.True(t, cfg.App.RotateRefreshTokens)
				assert.Equal(t, 5, cfg.App.PasswordHashCost)
			},
		},
		{
			name: "config alias",
			args: []string{"-config", "/etc/notes.json", "-purge-schedule", "@daily", "-auth-rate", "60", "-auth-burst", "10"},
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/etc/notes.json", cfg.JSONFilePath)
				assert.Equal(t, "@daily", cfg.Workers.BlacklistPurgeSchedule)
				assert.Equal(t, 60, cfg.Server.AuthRatePerMinute)
				assert.Equal(t, 10, cfg.Server.AuthRateBurst)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			cfg, err := parseFlags(fs, tt.args)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg, err := parseFlags(fs, []string{"-a", "not-an-address"})
	require.Error(t, err)
	assert.Nil(t, cfg)
}
