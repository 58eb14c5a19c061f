// Package config provides the configuration for leap.
//
// Settings come from three sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file (Load)
//  3. LEAP_* environment variables (ApplyEnv)
//
// A missing file is not an error. Validate reports every invalid setting at
// once.
//
// Example leap.toml:
//
//	[leap]
//	full_view = false
//	forward_boundary = "exclusive"
//	reverse_boundary = "inclusive"
//
//	[log]
//	level = "debug"
//	file = "/tmp/leap.log"
//
//	[keys]
//	s = "leap.forward"
//	S = "leap.backward"
package config
