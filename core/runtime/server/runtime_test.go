package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbridge/smartbridge/core/config"
)

func TestRuntimeLifecycle_StartReloadStop(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = freePort(t)
	dir := t.TempDir()
	cfg.Database.Path = filepath.Join(dir, "sample.db")
	cfg.Database.UploadDir = dir

	rt, err := NewRuntime(context.Background(), cfg, WithVersion("test"))
	require.NoError(t, err)

	require.NoError(t, rt.StartAsync())
	started := true
	defer func() {
		if started {
			_ = rt.Stop()
		}
	}()

	base := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	require.NoError(t, waitForHTTP200(base+"/heartbeat", 5*time.Second))

	status := getJSON(t, base+"/api/status")
	assert.Equal(t, "sample.db", status["current_db"])
	assert.Equal(t, false, status["llm_configured"])

	resp, err := http.Post(base+"/api/execute", "application/json", strings.NewReader(`{"sql":"SELECT COUNT(*) AS n FROM categories"}`))
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	resp.Body.Close()
	assert.Equal(t, true, result["success"])
	assert.EqualValues(t, 6, result["rows"].([]any)[0].(map[string]any)["n"])

	reloaded := config.Default()
	reloaded.LLM.Provider = "openai"
	reloaded.LLM.APIKey = "sk-test"
	require.NoError(t, rt.ReloadConfig(reloaded))

	status = getJSON(t, base+"/api/status")
	assert.Equal(t, true, status["llm_configured"])

	require.NoError(t, rt.Stop())
	started = false
}

func TestNewRuntime_BadDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = freePort(t)
	cfg.Database.Path = filepath.Join(t.TempDir(), "missing.db")
	cfg.Database.SeedIfMissing = false

	_, err := NewRuntime(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewRuntime_BadRedisURL(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = freePort(t)
	dir := t.TempDir()
	cfg.Database.Path = filepath.Join(dir, "sample.db")
	cfg.Database.UploadDir = dir
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RedisURL = "not-a-redis-url"

	_, err := NewRuntime(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}

func getJSON(t *testing.T, url string) map[string]any {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func freePort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	addr, ok := listener.Addr().(*net.TCPAddr)
	require.True(t, ok, "failed to resolve reserved TCP address")
	return addr.Port
}

func waitForHTTP200(url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("timed out waiting for %s", url)
}
