// Package config provides configuration management for tagviz.
//
// Configuration is read from an optional YAML file (tagviz.yaml by default)
// with environment variable overrides, validated, and exposed either as an
// explicit *Config or through a process-wide singleton.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("tagviz.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides("tagviz.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides("") // defaults + environment
//
// Fields omitted from the file keep their defaults; unknown fields are
// rejected.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention TAGVIZ_SECTION_FIELD:
//
//   - TAGVIZ_PARSER_USE_EXAMPLES overrides parser.use_examples
//   - TAGVIZ_HIGHLIGHT_PALETTE overrides highlight.palette
//   - TAGVIZ_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//   - TAGVIZ_WATCH_EXTENSIONS overrides watch.extensions (comma separated)
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Custom Palettes
//
// The highlight section may define palettes on top of a built-in base:
//
//	highlight:
//	  palette: solarized
//	  palettes:
//	    solarized:
//	      base: dark
//	      key: "#268bd2"
//	      string: "#2aa198"
//
// # Current Configuration
//
// The command installs the loaded configuration once it has been applied;
// the watch command reloads it when the file changes:
//
//	cfg, err := config.Reload("tagviz.yaml")
//	if err != nil {
//	    // config.Current() is unchanged
//	}
package config
