// Package config assembles runtime configuration from cobra flags,
// TABNAV_* environment variables, and an optional YAML config file, all
// merged through viper by the cmd package.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tabnav/tabnav/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath    string
	Trace       bool
	TraceScopes []string
}

type Features struct {
	Verbose bool
}

// Keys understood in flags, environment (TABNAV_ prefix, dashes as
// underscores), and the config file.
const (
	KeyEndpoint    = "endpoint"
	KeyWidth       = "width"
	KeyHeight      = "height"
	KeyFooter      = "footer"
	KeyKeymap      = "keymap"
	KeyTimeout     = "timeout"
	KeyTrace       = "trace"
	KeyTraceScopes = "trace-scopes"
	KeyLogFile     = "log-file"
	KeyVerbose     = "verbose"
)

// DefaultEndpoint is the conventional remote-debugging address.
const DefaultEndpoint = "127.0.0.1:9222"

// FromViper materializes a Config from a fully bound viper instance.
// args are the raw positional arguments, recorded for trace logging.
func FromViper(v *viper.Viper, args []string) Config {
	timeout := v.GetInt(KeyTimeout)
	cfg := Config{
		App: app.Config{
			Endpoint:        v.GetString(KeyEndpoint),
			Width:           v.GetInt(KeyWidth),
			Height:          v.GetInt(KeyHeight),
			ShowFooter:      v.GetBool(KeyFooter),
			Verbose:         v.GetBool(KeyVerbose),
			KeymapPath:      v.GetString(KeyKeymap),
			SequenceTimeout: time.Duration(timeout) * time.Millisecond,
		},
		Logging: Logging{
			FilePath:    v.GetString(KeyLogFile),
			Trace:       v.GetBool(KeyTrace),
			TraceScopes: v.GetStringSlice(KeyTraceScopes),
		},
		Features: Features{
			Verbose: v.GetBool(KeyVerbose),
		},
		Flags: map[string]string{
			KeyEndpoint:    v.GetString(KeyEndpoint),
			KeyWidth:       strconv.Itoa(v.GetInt(KeyWidth)),
			KeyHeight:      strconv.Itoa(v.GetInt(KeyHeight)),
			KeyFooter:      strconv.FormatBool(v.GetBool(KeyFooter)),
			KeyKeymap:      v.GetString(KeyKeymap),
			KeyTimeout:     strconv.Itoa(timeout),
			KeyTrace:       strconv.FormatBool(v.GetBool(KeyTrace)),
			KeyTraceScopes: strings.Join(v.GetStringSlice(KeyTraceScopes), ","),
			KeyLogFile:     v.GetString(KeyLogFile),
			KeyVerbose:     strconv.FormatBool(v.GetBool(KeyVerbose)),
		},
		Args: append([]string(nil), args...),
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Endpoint == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.SequenceTimeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", cfg.App.SequenceTimeout)
	}
	return nil
}
