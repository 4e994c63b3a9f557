package form

import "errors"

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidDefinition = errors.New("invalid form definition")
	ErrUnsupportedFormat = errors.New("unsupported definition format")
	ErrFailedToReadFile  = errors.New("failed to read definition file")
	ErrDuplicateForm     = errors.New("duplicate form name")
)
