package config

import (
	"errors"
	"io/fs"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
