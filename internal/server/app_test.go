package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = ""
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.GRPCAddr = "127.0.0.1:0"
	cfg.PasswordCost = 4
	return cfg
}

func TestNewApp_EmptyDSNUsesMemory(t *testing.T) {
	app := NewApp(context.Background(), testConfig(), logging.NewNop())
	assert.Equal(t, repomanager.ModeMemory, app.Mode())
}

func TestRun_StopsOnCancel(t *testing.T) {
	app := NewApp(context.Background(), testConfig(), logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestRun_BindFailureStopsEverything(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = "127.0.0.1:99999"
	app := NewApp(context.Background(), cfg, logging.NewNop())

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app kept running after HTTP bind failure")
	}
}
