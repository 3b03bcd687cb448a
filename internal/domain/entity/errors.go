package entity

import "errors"

// Error kinds surfaced by the pipeline. Construction-time failures (opening a
// source, locating a stream, initializing a codec) terminate the owning
// component; per-frame failures are logged and skipped unless the underlying
// stream itself is unusable.
var (
	ErrOpen          = errors.New("cannot open input")
	ErrStreamInfo    = errors.New("cannot read stream info")
	ErrNoVideoStream = errors.New("no video stream found")
	ErrCodecInit     = errors.New("codec initialization failed")
	ErrConversion    = errors.New("frame conversion failed")
	ErrIO            = errors.New("output i/o failed")
	ErrDecodeFrame   = errors.New("frame decode failed")
	ErrEncodeFrame   = errors.New("frame encode failed")
)
