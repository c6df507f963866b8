package richtext

import "errors"

var (
	ErrUnsupported   = errors.New("richtext: unsupported command")
	ErrInvalidValue  = errors.New("richtext: invalid command value")
	ErrEmptyFragment = errors.New("richtext: empty fragment")
	ErrEmptyURL      = errors.New("richtext: empty url")
	ErrUnsafeURL     = errors.New("richtext: unsafe url scheme")
	ErrMediaType     = errors.New("richtext: media type does not match")
)
