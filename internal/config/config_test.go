package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func boundViper() *viper.Viper {
	v := viper.New()
	v.Set(KeyEndpoint, "localhost:9333")
	v.Set(KeyWidth, 100)
	v.Set(KeyHeight, 30)
	v.Set(KeyFooter, true)
	v.Set(KeyKeymap, "/tmp/keymap.yaml")
	v.Set(KeyTimeout, 750)
	v.Set(KeyTrace, true)
	v.Set(KeyTraceScopes, []string{"key", "backend"})
	v.Set(KeyLogFile, "/tmp/tabnav.log")
	v.Set(KeyVerbose, true)
	return v
}

func TestFromViper_MapsAllKeys(t *testing.T) {
	cfg := FromViper(boundViper(), []string{"extra"})

	require.Equal(t, "localhost:9333", cfg.App.Endpoint)
	require.Equal(t, 100, cfg.App.Width)
	require.Equal(t, 30, cfg.App.Height)
	require.True(t, cfg.App.ShowFooter)
	require.True(t, cfg.App.Verbose)
	require.Equal(t, "/tmp/keymap.yaml", cfg.App.KeymapPath)
	require.Equal(t, 750*time.Millisecond, cfg.App.SequenceTimeout)
	require.Equal(t, "/tmp/tabnav.log", cfg.Logging.FilePath)
	require.True(t, cfg.Logging.Trace)
	require.Equal(t, []string{"key", "backend"}, cfg.Logging.TraceScopes)
	require.True(t, cfg.Features.Verbose)
	require.Equal(t, []string{"extra"}, cfg.Args)
}

func TestFromViper_RecordsFlagsForTracing(t *testing.T) {
	cfg := FromViper(boundViper(), nil)

	require.Equal(t, "localhost:9333", cfg.Flags[KeyEndpoint])
	require.Equal(t, "750", cfg.Flags[KeyTimeout])
	require.Equal(t, "true", cfg.Flags[KeyTrace])
	require.Equal(t, "key,backend", cfg.Flags[KeyTraceScopes])
}

func TestValidate(t *testing.T) {
	valid := FromViper(boundViper(), nil)
	require.NoError(t, Validate(valid))

	missing := valid
	missing.App.Endpoint = ""
	require.Error(t, Validate(missing))

	negWidth := valid
	negWidth.App.Width = -1
	require.Error(t, Validate(negWidth))

	negHeight := valid
	negHeight.App.Height = -2
	require.Error(t, Validate(negHeight))

	negTimeout := valid
	negTimeout.App.SequenceTimeout = -time.Second
	require.Error(t, Validate(negTimeout))
}
