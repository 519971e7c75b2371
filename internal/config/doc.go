// Package config loads ropecut settings.
//
// Settings are layered, later layers overriding earlier ones:
//
//	defaults < config file (TOML) < ROPECUT_* environment < command-line flags
//
// Each layer is a nested map produced by the loader sub-package. The merged
// map is decoded into a typed Config and validated.
//
// # Example file
//
//	[log]
//	level = "debug"
//
//	[rope]
//	construction = "merge"
//	validate = true
//
//	[history]
//	maxEntries = 500
//
//	[output]
//	format = "json"
//	digest = true
//
//	[watch]
//	debounce = "200ms"
package config
