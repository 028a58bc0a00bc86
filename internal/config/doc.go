// Package config loads the forage-routes configuration.
//
// The configuration file lives at $XDG_CONFIG_HOME/forage-routes/config.toml
// by default. A path ending in .yaml or .yml is read as YAML instead.
// Values not present in the file keep their built-in defaults:
//
//	[runtime]
//	command = "sandbox"
//	new_args = ["run"]
//	resume_args = ["resume"]
//	route_file_flag = "--route-file"
//	result_file_flag = "--result-file"
//
//	[logs]
//	data_root = "~/.cache"
//	path = "sandbox/sessions/{{.Session}}/logs"
//	prefix = "xcnetwork_"
//
//	[routes]
//	block_default = "0.0.0.0"
//
// history_dir enables the JSONL run history when set.
//
// LogsConfig implements netlog.Locator.
package config
