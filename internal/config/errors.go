package config

import "errors"

// Sentinel errors for internal use.
var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrInvalidMnemonic    = errors.New("invalid mnemonic")
	ErrMnemonicFileNotSet = errors.New("mnemonic file path not configured")
	ErrKeyDerivation      = errors.New("key derivation failed")
)

// Error codes returned to clients in API responses.
const (
	ErrorInvalidConfig     = "ERROR_INVALID_CONFIG"
	ErrorInvalidPath       = "ERROR_INVALID_PATH"
	ErrorInvalidAddress    = "ERROR_INVALID_ADDRESS"
	ErrorInvalidIndex      = "ERROR_INVALID_INDEX"
	ErrorAccountGeneration = "ERROR_ACCOUNT_GENERATION"
	ErrorDatabase          = "ERROR_DATABASE"
	ErrorExportFailed      = "ERROR_EXPORT_FAILED"
	ErrorRateLimited       = "ERROR_RATE_LIMITED"
	ErrorNotFound          = "ERROR_NOT_FOUND"
)
