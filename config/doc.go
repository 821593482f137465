// Package config assembles the runtime settings of the matcher.
//
// Settings are layered, later sources overriding earlier ones: built-in
// defaults, an optional YAML or TOML file, a .env file, the process
// environment and finally command line flags applied by the caller.
// Validate reports every missing required setting at once.
package config
