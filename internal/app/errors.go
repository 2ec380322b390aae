package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrPanelTooLarge = errors.New("panel too large")
)
