package broker

import "errors"

// ErrNotReady indicates the broker channel has not been established.
var ErrNotReady = errors.New("broker not ready")
