// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"os"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the process command line into a partial config.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-redis-address, -redis-password, -redis-db blacklist redis settings
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-access-token-duration, -refresh-token-duration token lifetimes
//	-rotate-refresh-tokens issue a new refresh token on every refresh
//	-password-hash-cost bcrypt cost
//	-version application version
//	-log-level zerolog level
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-max-body-bytes request body limit
//	-auth-rate, -auth-burst per-IP limits on auth endpoints
//	-secure-cookies set the Secure attribute on the session cookie
//	-purge-schedule cron spec for the blacklist purge worker
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	cfg := &StructuredConfig{}

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.Storage.Redis.Address, "redis-address", "", "Redis address for the token blacklist")
	fs.StringVar(&cfg.Storage.Redis.Password, "redis-password", "", "Redis password")
	fs.IntVar(&cfg.Storage.Redis.DB, "redis-db", 0, "Redis database number")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.AccessTokenDuration, "access-token-duration", 0, "Access token lifetime (e.g., 5m)")
	fs.DurationVar(&cfg.App.RefreshTokenDuration, "refresh-token-duration", 0, "Refresh token lifetime (e.g., 24h)")
	fs.BoolVar(&cfg.App.RotateRefreshTokens, "rotate-refresh-tokens", false, "Rotate refresh tokens on refresh")
	fs.IntVar(&cfg.App.PasswordHashCost, "password-hash-cost", 0, "bcrypt cost")
	fs.StringVar(&cfg.App.Version, "version", "", "Application version")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Int64Var(&cfg.Server.MaxBodyBytes, "max-body-bytes", 0, "Max request body size in bytes")
	fs.IntVar(&cfg.Server.AuthRatePerMinute, "auth-rate", 0, "Auth requests per minute per IP")
	fs.IntVar(&cfg.Server.AuthRateBurst, "auth-burst", 0, "Auth request burst per IP")
	fs.BoolVar(&cfg.Server.SecureCookies, "secure-cookies", false, "Mark session cookie as Secure")
	fs.StringVar(&cfg.Workers.BlacklistPurgeSchedule, "purge-schedule", "", "Cron spec for blacklist purge")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number is a positive integer up to 65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

var _ flag.Value = (*NetAddress)(nil)
