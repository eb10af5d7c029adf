// Package cmd implements the command-line interface of mediaser. It provides
// commands to encode and decode media content with any of the available
// serializers and to benchmark them against each other.
//
// The package is organized into several subpackages:
//
//   - codec: Commands to encode, decode and convert media content (encode, decode, convert)
//   - bench: The benchmark command comparing all serializers
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set with a MEDIASER_ prefixed environment variable
// (e.g. MEDIASER_MAX_POD_DEPTH), a .env file or a config file passed with --config.
//
// See mediaser -help for a list of all commands.
package cmd
