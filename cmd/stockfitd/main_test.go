package main

import (
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfit/stockfit/pkg/config"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("API_KEY", "k")
	t.Setenv("DATABASE_URL", "postgres://db/stockfit")

	cfg := config.DefaultConfig()
	applyEnv(cfg)

	assert.Equal(t, ":9191", cfg.Server.Addr)
	assert.Equal(t, "k", cfg.Server.APIKey)
	assert.Equal(t, "postgres://db/stockfit", cfg.History.DatabaseURL)
}

func TestApplyEnvKeepsConfigWhenUnset(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_KEY", "")
	t.Setenv("DATABASE_URL", "")

	cfg := config.DefaultConfig()
	cfg.Server.APIKey = "from-file"
	applyEnv(cfg)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "from-file", cfg.Server.APIKey)
}

func TestEnvBool(t *testing.T) {
	t.Setenv("LOG_PRETTY", "true")
	assert.True(t, envBool("LOG_PRETTY"))
	t.Setenv("LOG_PRETTY", "nope")
	assert.False(t, envBool("LOG_PRETTY"))
}

func TestOpenHistoryLocalInMemoryIndex(t *testing.T) {
	hc := config.HistoryConfig{Enabled: true, Backend: "local", LocalPath: t.TempDir()}

	h, err := openHistory(t.Context(), hc, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, h.svc)
	assert.Nil(t, h.db)
	assert.Empty(t, h.closers)
	assert.NoError(t, h.Close())
}

type fakeCloser struct {
	name  string
	err   error
	order *[]string
}

func (f *fakeCloser) Close() error {
	*f.order = append(*f.order, f.name)
	return f.err
}

func TestHistoryCloseReleasesAll(t *testing.T) {
	var order []string
	h := &history{closers: []io.Closer{
		&fakeCloser{name: "bucket", order: &order},
		&fakeCloser{name: "db", err: errors.New("db busy"), order: &order},
	}}

	err := h.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db busy")
	assert.Equal(t, []string{"db", "bucket"}, order)

	// A second close is a no-op.
	require.NoError(t, h.Close())
	assert.Len(t, order, 2)
}

func TestOpenHistoryBadDatabaseURL(t *testing.T) {
	hc := config.HistoryConfig{Enabled: true, Backend: "local", LocalPath: t.TempDir(), DatabaseURL: "mysql://nope"}

	_, err := openHistory(t.Context(), hc, zerolog.Nop())
	require.Error(t, err)
}
