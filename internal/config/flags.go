// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-hash-key reset-token hash key
//	-reset-url-base password reset link base URL
//	-max-verify-attempts failed verification attempts before lockout (0 disables)
//	-verify-lock-duration verification lockout duration (e.g., "15m")
//	-cleanup-interval cleanup worker sweep interval (e.g., "1h")
//	-unverified-ttl stale unverified account retention (e.g., "24h")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var hashKey string
	var resetURLBase string
	var maxVerifyAttempts int
	var verifyLockDuration time.Duration
	var cleanupInterval time.Duration
	var unverifiedTTL time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&hashKey, "hash-key", "", "Reset-token hash key")
	flag.StringVar(&resetURLBase, "reset-url-base", "", "Password reset link base URL")
	flag.IntVar(&maxVerifyAttempts, "max-verify-attempts", 0, "Failed verification attempts before lockout (0 disables)")
	flag.DurationVar(&verifyLockDuration, "verify-lock-duration", 0, "Verification lockout duration (e.g., 15m)")
	flag.DurationVar(&cleanupInterval, "cleanup-interval", 0, "Cleanup worker sweep interval (e.g., 1h)")
	flag.DurationVar(&unverifiedTTL, "unverified-ttl", 0, "Stale unverified account retention (e.g., 24h)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:       tokenSignKey,
			TokenIssuer:        tokenIssuer,
			TokenDuration:      tokenDuration,
			HashKey:            hashKey,
			ResetURLBase:       resetURLBase,
			MaxVerifyAttempts:  maxVerifyAttempts,
			VerifyLockDuration: verifyLockDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			CleanupInterval: cleanupInterval,
			UnverifiedTTL:   unverifiedTTL,
		},
		JSONFilePath: jsonConfigPath,
	}
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
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
