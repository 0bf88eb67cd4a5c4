package graphics

import "errors"

var (
	// ErrCapacityExceeded is returned when an append would overflow a
	// buffer's fixed capacity or the registry is full. Nothing is written.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrUnknownTarget is returned for target ids the registry never issued
	ErrUnknownTarget = errors.New("unknown draw target")

	// ErrIndexOutOfRange is returned when a rebased index would point past
	// the target's merged vertices. Nothing is written.
	ErrIndexOutOfRange = errors.New("index out of range")

	ErrShaderCompileFailed = errors.New("shader compilation failed")
	ErrShaderLinkFailed    = errors.New("shader program link failed")
	ErrResourceReadFailed  = errors.New("could not read resource")
)
