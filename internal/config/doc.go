// Package config resolves jot settings.
//
// Sources, lowest to highest priority:
// 1. Built-in defaults
// 2. User config file (~/.jot/config.toml, else <os config dir>/jot/config.toml),
//    or the file named by --config
// 3. Environment variables (JOT_*)
// 4. Command-line flags
package config
