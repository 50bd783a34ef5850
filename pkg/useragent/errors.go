package useragent

import "errors"

var (
	ErrEmptyUserAgent     = errors.New("user-agent string is empty")
	ErrUnknownDevice      = errors.New("could not classify device type")
	ErrMalformedUserAgent = errors.New("user-agent string is malformed")
)
