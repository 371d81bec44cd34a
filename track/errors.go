package track

import "errors"

// ErrUnsupportedFormat is returned when a file's extension is unknown
// or its contents cannot be decoded by the matching decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")
