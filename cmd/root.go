// Package cmd wires the command line: cobra owns flags and usage,
// viper merges them with TABNAV_* environment variables and an optional
// ~/.config/tabnav/config.yaml before the popup starts.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/tabnav/tabnav/internal/app"
	"github.com/tabnav/tabnav/internal/config"
	"github.com/tabnav/tabnav/internal/logging"
	"github.com/tabnav/tabnav/internal/logging/events"
)

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabnav",
		Short: "Modal keyboard popup for browser tabs",
		Long: "tabnav lists the tabs of a running browser over its remote-debugging\n" +
			"endpoint and drives them with vim-style modal keys.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper(v, args)
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			logging.Configure(cfg.Logging.FilePath)
			logging.SetTraceEnabled(cfg.Logging.Trace)
			logging.SetTraceScopes(cfg.Logging.TraceScopes)
			traceStartup(cfg)
			if err := app.Run(cfg.App); err != nil {
				logging.Error(err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String(config.KeyEndpoint, config.DefaultEndpoint, "remote-debugging endpoint (host:port or URL)")
	flags.Int(config.KeyWidth, 0, "desired viewport width in cells (0 uses terminal width)")
	flags.Int(config.KeyHeight, 0, "desired viewport height in rows (0 uses terminal height)")
	flags.Bool(config.KeyFooter, false, "enable footer hint row (disabled by default)")
	flags.String(config.KeyKeymap, "", "path to a keymap overlay file")
	flags.Int(config.KeyTimeout, 500, "key sequence ambiguity timeout in milliseconds")
	flags.Bool(config.KeyTrace, false, "enable verbose JSON trace logging")
	flags.StringSlice(config.KeyTraceScopes, nil, "restrict trace logging to these scopes (e.g. key,backend)")
	flags.String(config.KeyLogFile, "", "path to the log file")
	flags.Bool(config.KeyVerbose, false, "print success messages for actions")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("TABNAV")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(home, ".config", "tabnav"))
		// a missing config file is the common case
		_ = v.ReadInConfig()
	}

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd(viper.New()).Execute()
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
