package server

import "errors"

var (
	ErrFormNotFound = errors.New("form not found")
	ErrStart        = errors.New("failed to start HTTP server")
	ErrShutdown     = errors.New("failed to shutdown HTTP server gracefully")
)
