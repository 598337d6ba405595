package analysis

import "errors"

// ErrNoImageData indicates the request carried no image payload; the
// pipeline rejects it before any stage runs.
var ErrNoImageData = errors.New("no image data provided")
