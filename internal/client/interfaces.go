// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command named by args[0] and returns when it is done.
	Run(ctx context.Context, args []string) error
}

// Browser runs the interactive account browser, starting with a search for
// query when it is not empty.
type Browser interface {
	Browse(ctx context.Context, query string) error
}
