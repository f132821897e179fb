package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xgxfault "github.com/xgx-io/xgx-fault"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faultprobe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFromYAML(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
pool:
  name: decode
  workers: 4
  lock_os_thread: true
probes: [nil, divide]
metrics_namespace: decoder
`)
	conf, err := FromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", conf.LogLevel())
	assert.Equal(t, "decode", conf.PoolName())
	assert.Equal(t, 4, conf.Workers())
	assert.True(t, conf.LockOSThread())
	assert.Equal(t, []string{"nil", "divide"}, conf.Probes())
	assert.Equal(t, "decoder", conf.MetricsNamespace())
}

func TestFromYAML_Defaults(t *testing.T) {
	conf, err := FromYAML(writeConfig(t, "log_level: warn\n"))
	require.NoError(t, err)
	assert.Equal(t, "probe", conf.PoolName())
	assert.Equal(t, 2, conf.Workers())
	assert.Equal(t, "faultprobe", conf.MetricsNamespace())
}

func TestFromYAML_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty pool name": "pool:\n  name: \"\"\n",
		"no workers":      "pool:\n  workers: 0\n",
		"bad level":       "log_level: loud\n",
		"unknown probe":   "probes: [segv]\n",
		"malformed":       "pool: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromYAML(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := FromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProbesTranslateOnInstalledGoroutine(t *testing.T) {
	done := make(chan map[string]error)
	go func() {
		xgxfault.EnsureInstalled("probe-test")
		defer xgxfault.Release()
		out := map[string]error{}
		for _, n := range probeNames() {
			out[n] = xgxfault.Guard(func() error { return probes[n](t.Context()) })
		}
		done <- out
	}()
	got := <-done

	assert.NoError(t, got["ok"])
	assert.True(t, xgxfault.IsAccessViolation(got["nil"]))
	assert.True(t, xgxfault.IsDivideByZero(got["divide"]))
	if !errors.Is(got["protnone"], errors.ErrUnsupported) {
		assert.True(t, xgxfault.IsAccessViolation(got["protnone"]))
	}
}

func TestCountFaults(t *testing.T) {
	f := xgxfault.Classify(xgxfault.FaultRecord{Code: xgxfault.TrapIntDivideByZero})
	assert.Equal(t, 0, countFaults(nil))
	assert.Equal(t, 1, countFaults(f))
	assert.Equal(t, 2, countFaults(xgxfault.Join(f, errors.New("x"), f)))
}
