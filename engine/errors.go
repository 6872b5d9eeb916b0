package engine

import "errors"

// ErrEngineReleased is returned by build calls made after Release.
var ErrEngineReleased = errors.New("engine: released")
