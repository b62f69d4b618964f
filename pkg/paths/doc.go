// Package paths provides centralized path handling for homevault.
//
// It covers two concerns:
//
//   - Application directories, following the XDG Base Directory
//     specification (config and state)
//   - Path arithmetic used by the transfer engine: home expansion,
//     normalization, canonicalization and descendant checks
//
// # Environment Variables
//
//   - HOMEVAULT_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/homevault)
//   - HOMEVAULT_STATE_DIR: Override XDG state directory (default: $XDG_STATE_HOME/homevault)
//
// # Usage
//
//	p := paths.New()
//	cfg := p.ConfigFilePath() // ~/.config/homevault/config.toml
//
//	home, err := paths.ResolveHome("~")
//	inside := paths.IsDescendant("/home/user/.bashrc", home)
package paths
