// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package runner

import "errors"

var (
	// ErrSurfaceNotFound is returned by Initialize when the host has no
	// surface with the requested identifier.
	ErrSurfaceNotFound = errors.New("runner: surface not found")

	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("runner: already initialized")

	// ErrNotInitialized is returned by Start before Initialize.
	ErrNotInitialized = errors.New("runner: not initialized")

	// ErrAlreadyRunning is returned by a second Start call.
	ErrAlreadyRunning = errors.New("runner: already running")
)
