package core

import (
	"errors"
)

var (
	ErrPlatformInit            = errors.New("unable to initialize the platform layer")
	ErrWindowCreate            = errors.New("failed to create the window")
	ErrVideoMode               = errors.New("failed to get video mode")
	ErrResourceNotFound        = errors.New("resource not found")
	ErrImageDecode             = errors.New("unable to decode image")
	ErrUnsupportedChannelCount = errors.New("unsupported texture channel count")
	ErrShaderLink              = errors.New("shader program failed to link")
	ErrInvalidConfig           = errors.New("invalid configuration")
	ErrNotInitialized          = errors.New("not initialized")
	ErrAlreadyClosed           = errors.New("already closed")
)
