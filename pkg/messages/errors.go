package messages

import "errors"

var (
	ErrFailedToParseYAML = errors.New("failed to parse YAML catalog")
	ErrInvalidStructure  = errors.New("catalog must map language codes to message trees")
	ErrInvalidLanguage   = errors.New("invalid language tag")
	ErrFailedToReadFile  = errors.New("failed to read catalog file")
)
