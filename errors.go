package qrgen

import "errors"

var (
	// ErrInvalidArgument is returned when an encoding parameter is out of
	// its permitted range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnencodable is returned when a payload contains characters the
	// requested mode cannot represent.
	ErrUnencodable = errors.New("unencodable input")

	// ErrDataTooLong is returned when a payload does not fit in the
	// largest permitted symbol version at the requested error correction
	// level.
	ErrDataTooLong = errors.New("data too long")
)
