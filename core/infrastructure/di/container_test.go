package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbridge/smartbridge/core/config"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Database.Path = filepath.Join(dir, "sample.db")
	cfg.Database.UploadDir = dir
	return cfg
}

func TestNewContainer_SeedsMissingDatabase(t *testing.T) {
	cfg := testConfig(t)

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()

	current, name, err := c.QueryService.Schema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sample.db", name)
	assert.Equal(t, []string{"categories", "customers", "order_items", "orders", "products", "reviews"}, current.TableNames())

	status := c.DatabaseService.Status()
	assert.Equal(t, "sample.db", status.CurrentDB)
	assert.Equal(t, "sqlite", status.Dialect)
	assert.False(t, status.LLMConfigured)
}

func TestNewContainer_MissingDatabaseWithoutSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.SeedIfMissing = false

	_, err := NewContainer(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database file not found")
}

func TestNewContainer_UnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.Provider = "claude"

	_, err := NewContainer(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewTranslator(t *testing.T) {
	gateway, err := NewTranslator(config.LLMConfig{Provider: "openai", APIKey: "sk-test", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.True(t, gateway.Configured())

	gateway, err = NewTranslator(config.LLMConfig{Provider: "gemini", APIKey: "your_gemini_api_key_here"})
	require.NoError(t, err)
	assert.False(t, gateway.Configured())
}
