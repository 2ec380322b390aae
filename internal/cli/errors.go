package cli

import "errors"

// Sentinel kinds for CLI errors.
var (
	ErrInput = errors.New("invalid input")
)
