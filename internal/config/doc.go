// Package config provides configuration loading, merging, defaulting and
// validation for the application.
//
// Configuration is assembled from multiple sources. Sources are merged with
// mergo without override, so a field set by an earlier source wins:
//  1. Environment variables (after loading an optional .env file)
//  2. Command-line flags
//  3. JSON or YAML config file
//
// Fields left empty by every source receive the defaults in defaults.go.
// The entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the command-line client.
package config
