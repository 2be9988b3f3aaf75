package config

import "errors"

// Sentinel errors for internal use.
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrInvalidAddress = errors.New("invalid address")
	ErrDecodeFailed   = errors.New("response decode failed")
	ErrExportFailed   = errors.New("export failed")
)

// Error codes shared with API consumers via error responses.
const (
	ErrorInvalidAddress = "ERROR_INVALID_ADDRESS"
	ErrorInvalidParams  = "ERROR_INVALID_PARAMS"
)
