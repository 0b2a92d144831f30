// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the go-accounts command-line client.
//
// Every command is one request against the server's export representation,
// except browse, which hands the terminal to the table browser in package
// tui. The login survives between runs in a local session file.
package client
