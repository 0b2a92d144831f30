// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Sentinel errors returned by configuration validation.
var (
	// ErrInvalidAdapterConfigs is returned when the client has no server
	// address or a non-positive request timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")

	// ErrInvalidStorageConfigs is returned for an unknown database driver,
	// an empty DSN or a non-positive session TTL.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidAppConfigs is returned when no token signing key is set.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")

	// ErrInvalidListingConfigs is returned for a non-positive page size or
	// an unknown outline.
	ErrInvalidListingConfigs = errors.New("invalid listing configuration")

	// ErrInvalidWorkerConfigs is returned for a non-positive GC interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
