// Package config holds the runtime configuration for anthrokit: CLI
// options, clinic preference files, and XDG directory resolution. The
// engine itself takes no configuration; everything here parameterizes
// the surrounding tool (which formula variant a clinic prefers, where
// the history database lives, how strict the mass-balance policy is).
package config
