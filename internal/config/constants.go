package config

import "time"

// Account Generation
const (
	MaxAccounts = 500_000
)

// BIP-44 Derivation
const (
	BIP44Purpose = 44
	SOLCoinType  = 501 // m/44'/501'/N'/0'
)

// Server
const (
	ServerReadTimeout    = 30 * time.Second
	ServerWriteTimeout   = 60 * time.Second
	ServerIdleTimeout    = 120 * time.Second
	ServerMaxHeaderBytes = 1 << 20
	ShutdownTimeout      = 15 * time.Second
)

// API Pagination
const (
	DefaultPage     = 1
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// Logging
const (
	LogFilePattern = "solvault-%s.log" // %s = YYYY-MM-DD
	LogMaxAgeDays  = 30
)

// Database
const (
	DBBusyTimeout = 5000 // milliseconds
)
