package domain

import "errors"

var (
	ErrMalformedRow        = errors.New("malformed session row")
	ErrUnmatchedSessionEnd = errors.New("session end without matching start")
)
