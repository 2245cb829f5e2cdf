package config

import (
	"testing"

	"github.com/xichen2020/objcstr/convert"
	"github.com/xichen2020/objcstr/foundation"
	"github.com/xichen2020/objcstr/foundation/sim"
	xbytes "github.com/xichen2020/objcstr/x/bytes"

	xconfig "github.com/m3db/m3x/config"
	"github.com/m3db/m3x/instrument"
	"github.com/stretchr/testify/require"
)

func TestLoadExampleConfiguration(t *testing.T) {
	var cfg Configuration
	require.NoError(t, xconfig.LoadFile(&cfg, "convbench.yaml", xconfig.Options{}))

	require.Equal(t, "info", cfg.Logging.Level)
	require.Nil(t, cfg.Metrics)
	require.Equal(t, SimRuntime, cfg.Runtime.Kind)
	require.Equal(t, 3, len(cfg.Converter.BufferPool.Buckets))
	require.Equal(t, convert.ReplaceInvalidUTF8, *cfg.Converter.InvalidUTF8Policy)
	require.Equal(t, convert.ValidStrategies(), cfg.Bench.StrategiesOrDefault())
	require.Equal(t, 100000, cfg.Bench.IterationsOrDefault())
	require.Equal(t, 1100, len(cfg.Bench.InputText()))

	iOpts := instrument.NewOptions()
	rt, err := cfg.Runtime.NewRuntime(iOpts)
	require.NoError(t, err)
	_, ok := rt.(*sim.Runtime)
	require.True(t, ok)

	opts := cfg.Converter.NewOptions(iOpts)
	require.Equal(t, xbytes.CopyData, opts.CopyDataMode())
	require.Equal(t, 1048576, opts.MaxBufferSize())

	s := foundation.NewString(rt, cfg.Bench.InputText())
	require.Equal(t, cfg.Bench.InputText(), convert.NewConverter(opts).ViaBuffer(s))
	s.Release()
}

func TestBenchConfigurationDefaults(t *testing.T) {
	var cfg BenchConfiguration
	require.Equal(t, convert.ValidStrategies(), cfg.StrategiesOrDefault())
	require.Equal(t, defaultIterations, cfg.IterationsOrDefault())
	require.Equal(t, 1100, len(cfg.InputText()))
}

func TestConverterConfigurationDefaults(t *testing.T) {
	var cfg ConverterConfiguration
	opts := cfg.NewOptions(instrument.NewOptions())
	require.Equal(t, convert.HeapAllocator, opts.BufferAllocator())
	require.Equal(t, xbytes.DontCopyData, opts.CopyDataMode())
}

func TestUnknownRuntimeKind(t *testing.T) {
	cfg := RuntimeConfiguration{Kind: "jvm"}
	_, err := cfg.NewRuntime(instrument.NewOptions())
	require.Error(t, err)
}
