package model

import "errors"

var (
	ErrInvalidJSONB = errors.New("invalid jsonb value")
)
