package slip10

import "errors"

var (
	ErrInvalidPath = errors.New("invalid derivation path")
)
