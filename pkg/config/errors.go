package config

import "errors"

var (
	ErrParsingConfig   = errors.New("config: cannot parse environment")
	ErrInvalidConfig   = errors.New("config: validation failed")
	ErrLoadingEnvFile  = errors.New("config: cannot load env file")
	ErrConfigNotLoaded = errors.New("config: not loaded")
	ErrNilPointer      = errors.New("config: nil destination")
)
